package api

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the viewer server.
type ServerConfig struct {
	Bind    string
	Port    int
	APIKey  string
	DataDir string // directory holding the binary table files
}

// TableInfo is one entry of the table listing.
type TableInfo struct {
	File   string `json:"file"`
	Kind   string `json:"kind"`
	Fields int    `json:"fields,omitempty"`
}
