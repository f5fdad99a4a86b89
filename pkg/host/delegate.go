package host

import "strings"

// ChooseAgent picks the registered agent a free-text query should go
// to, by scoring the query against each agent's skill tags and name.
// A query matching nothing goes to the session's active agent when one
// is set, otherwise to the first registered agent. The second return
// value is false when no agents are registered at all.
func ChooseAgent(reg *Registry, query string, state *SessionState) (string, bool) {
	names := reg.Names()
	if len(names) == 0 {
		return "", false
	}

	q := strings.ToLower(query)
	best := ""
	bestScore := 0
	for _, name := range names {
		conn, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		score := 0
		for _, skill := range conn.Card.Skills {
			for _, tag := range skill.Tags {
				if strings.Contains(q, strings.ToLower(tag)) {
					score++
				}
			}
		}
		for _, word := range strings.Fields(strings.ToLower(name)) {
			if strings.Contains(q, word) {
				score++
			}
		}
		if score > bestScore {
			best = name
			bestScore = score
		}
	}

	if best != "" {
		return best, true
	}
	if state != nil && state.ActiveAgent != "" {
		if _, ok := reg.Lookup(state.ActiveAgent); ok {
			return state.ActiveAgent, true
		}
	}
	return names[0], true
}
