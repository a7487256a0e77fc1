package main

// Generative model configuration constants
const (
	// Embedding model for the semantic catalog index
	DefaultEmbeddingModel = "gemini-embedding-001"
	// LLM model for metadata suggestions
	DefaultLLMModel = "gemini-flash-lite-latest"
	// Output dimensionality for embeddings (MRL optimized)
	EmbeddingDimension = 768
)

// Catalog storage constants
const (
	// Subdirectory of the data dir holding the catalog database
	DefaultDBDir = "catalog"
	// Key under which the full catalog record is stored
	CatalogKey = "reelmcp:videos:v1"
	// Key under which the admin session record is stored
	SessionKey = "reelmcp:admin_session"
	// Literal value of an authenticated session record
	SessionActiveValue = "true"
	// Collection name in the semantic index
	IndexCollectionName = "catalog_index"
)

// Catalog entry defaults applied on the creation path
const (
	DefaultCategory = "General"
	DefaultQuality  = "720p"
)

// Admin session constants
const (
	// Placeholder shared secret, overridable via config or ADMIN_PASSWORD.
	// Not a security boundary.
	DefaultAdminSecret = "admin123"
)

// Embedding task type constants
const (
	// Task type for indexing catalog entries
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
	// Task type for querying
	TaskTypeQuery = "RETRIEVAL_QUERY"
	// Prefix to mark query tasks in the embedding function
	QueryTaskPrefix = "QUERY_TASK:"
)

// Search and retrieval constants
const (
	// Default number of results to return from semantic search
	DefaultSearchResults = 5
	// Maximum snippet length in list output
	MaxSnippetLength = 50
	// Maximum tags a metadata suggestion may carry
	MaxSuggestionTags = 5
)

// Suggestion request constants
const (
	// Hard timeout for one suggestion request
	SuggestTimeoutSeconds = 30
)

// Server configuration constants
const (
	// MCP server name
	ServerName = "reelmcp"
	// Server version following semantic versioning
	ServerVersion = "1.0.0"
)

// UI/CLI messages
const (
	PrompStr      = "reel> "
	WelcomeMsg    = "=== ReelMCP Test Mode ==="
	HelpMsg       = "Commands: list | get <id> | add <title> | delete <id> | search <q> | suggest <prompt> | login <password> | logout | export <file> | import <file> | exit"
	UnknownCmdMsg = "Unknown command. Try: list, get, add, delete, search, suggest, login, logout, export, import, exit"
)

// Error and status messages
const (
	EmptyCatalogMsg  = "Catalog is empty."
	AdminRequiredMsg = "Admin session required. Use admin_login first."
	LoginOkMsg       = "Admin session started."
	LoginFailMsg     = "Invalid password."
	LogoutMsg        = "Admin session ended."
)
