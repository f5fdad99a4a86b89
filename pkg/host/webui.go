package host

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// WebUI serves the chat page and the WebSocket endpoint relaying user
// messages through the router.
type WebUI struct {
	registry *Registry
	router   *Router
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewWebUI creates the chat UI over a registry and router.
func NewWebUI(registry *Registry, router *Router, logger *zap.Logger) *WebUI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebUI{
		registry: registry,
		router:   router,
		logger:   logger.With(zap.String("component", "webui")),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler for the UI endpoints.
func (u *WebUI) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", u.handleIndex)
	mux.HandleFunc("/agents", u.handleAgents)
	mux.HandleFunc("/ws", u.handleChat)
	return cors.AllowAll().Handler(mux)
}

// Start runs the UI server until the context is cancelled.
func (u *WebUI) Start(ctx context.Context, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     u.Handler(),
		ReadTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		u.logger.Info("starting host UI", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleAgents lists the registered remote agents.
func (u *WebUI) handleAgents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u.registry.List())
}

// chatRequest is one user message received over the WebSocket.
type chatRequest struct {
	Message string `json:"message"`
}

// chatReply is one frame sent back over the WebSocket.
type chatReply struct {
	Type  string `json:"type"` // "status", "fragment", "error" or "done"
	Agent string `json:"agent,omitempty"`
	Text  string `json:"text,omitempty"`
}

// handleChat runs one conversation: each connection owns its session
// state, and the single read loop serializes access to it.
func (u *WebUI) handleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := u.upgrader.Upgrade(w, r, nil)
	if err != nil {
		u.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	state := &SessionState{}
	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				u.logger.Warn("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}
		if req.Message == "" {
			conn.WriteJSON(chatReply{Type: "error", Text: "empty message"})
			continue
		}

		agentName, ok := ChooseAgent(u.registry, req.Message, state)
		if !ok {
			conn.WriteJSON(chatReply{Type: "error", Text: "no remote agents are registered"})
			continue
		}

		conn.WriteJSON(chatReply{Type: "status", Agent: agentName, Text: "dispatching"})

		for _, part := range u.router.Dispatch(r.Context(), agentName, req.Message, state) {
			if part.Type != "text" {
				continue
			}
			if err := conn.WriteJSON(chatReply{Type: "fragment", Agent: agentName, Text: part.Text}); err != nil {
				u.logger.Warn("failed to write fragment", zap.Error(err))
				return
			}
		}
		conn.WriteJSON(chatReply{Type: "done", Agent: agentName})
	}
}

// handleIndex serves the chat page.
func (u *WebUI) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	t, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	data := struct {
		Agents []AgentInfo
	}{
		Agents: u.registry.List(),
	}

	w.Header().Set("Content-Type", "text/html")
	if err := t.Execute(w, data); err != nil {
		u.logger.Error("failed to render index", zap.Error(err))
	}
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>BBQ Beach &amp; Weather Host Agent</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            margin: 0;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            max-width: 900px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #4CAF50 0%, #2196F3 100%);
            color: white;
            padding: 20px;
            text-align: center;
        }
        .agents {
            display: flex;
            gap: 10px;
            padding: 15px;
        }
        .agent-info {
            flex: 1;
            background-color: #f0f8ff;
            padding: 15px;
            border-radius: 10px;
            border-left: 4px solid #2196F3;
        }
        #log {
            height: 320px;
            overflow-y: auto;
            border: 1px solid #ddd;
            margin: 15px;
            padding: 10px;
            border-radius: 6px;
        }
        .line-user { color: #333; font-weight: bold; }
        .line-agent { color: #1565c0; white-space: pre-wrap; }
        .line-error { color: #c62828; }
        .composer { display: flex; gap: 8px; padding: 0 15px 15px; }
        .composer input { flex: 1; padding: 8px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>BBQ Beach &amp; Weather Host Agent</h1></div>
        <div class="agents">
            {{range .Agents}}
            <div class="agent-info">
                <h3>{{.Name}}</h3>
                <p>{{.Description}}</p>
                <ul>{{range .Examples}}<li>{{.}}</li>{{end}}</ul>
            </div>
            {{end}}
        </div>
        <div id="log"></div>
        <div class="composer">
            <input id="msg" type="text" placeholder="Ask about BBQ beaches or the weather...">
            <button onclick="send()">Send</button>
        </div>
    </div>
    <script>
        const log = document.getElementById('log');
        const input = document.getElementById('msg');
        const ws = new WebSocket('ws://' + location.host + '/ws');
        function append(cls, text) {
            const div = document.createElement('div');
            div.className = cls;
            div.textContent = text;
            log.appendChild(div);
            log.scrollTop = log.scrollHeight;
        }
        ws.onmessage = (ev) => {
            const reply = JSON.parse(ev.data);
            if (reply.type === 'fragment') append('line-agent', reply.agent + ': ' + reply.text);
            else if (reply.type === 'error') append('line-error', reply.text);
        };
        function send() {
            if (!input.value) return;
            append('line-user', 'You: ' + input.value);
            ws.send(JSON.stringify({message: input.value}));
            input.value = '';
        }
        input.addEventListener('keydown', (e) => { if (e.key === 'Enter') send(); });
    </script>
</body>
</html>
`
