package domain

// Runtime describes how one supported language is executed remotely
type Runtime struct {
	Key        string   `json:"key"`
	RuntimeID  string   `json:"runtime"`
	Version    string   `json:"version"`
	SourceFile string   `json:"sourceFile"`
	Aliases    []string `json:"aliases,omitempty"`
	// Interpreted languages report syntax errors on the run stage
	Interpreted        bool     `json:"interpreted"`
	SyntaxErrorMarkers []string `json:"-"`
}

// RuntimeInfo is one runtime advertised by the execution service
type RuntimeInfo struct {
	Language string   `json:"language"`
	Version  string   `json:"version"`
	Aliases  []string `json:"aliases"`
	Runtime  string   `json:"runtime,omitempty"`
}
