package domain

// EscalationPolicy is a single policy as returned by the upstream directory.
// Field names follow the upstream snake_case wire schema and are passed
// through to callers unchanged.
type EscalationPolicy struct {
	ID                         string `json:"id"`
	Type                       string `json:"type,omitempty"`
	Summary                    string `json:"summary,omitempty"`
	OnCallHandoffNotifications string `json:"on_call_handoff_notifications,omitempty"`
	Self                       string `json:"self,omitempty"`
	HTMLURL                    string `json:"html_url,omitempty"`
	Name                       string `json:"name"`
	NumLoops                   int    `json:"num_loops,omitempty"`
}
