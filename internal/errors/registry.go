package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Usage Errors (E001-E099)
	// ============================================

	"E001": {
		Category:   CategoryUsage,
		Message:    "Nil root node",
		Detail:     "Mount requires a non-nil root node to render.",
		Suggestion: "Pass the result of vdom.H or an element helper like vdom.Div.",
	},
	"E002": {
		Category:   CategoryUsage,
		Message:    "Invalid container handle",
		Detail:     "The container is not a handle the surface can mount children into.",
		Suggestion: "Use a container created by the surface, e.g. memdom.NewDocument().",
	},

	// ============================================
	// Runtime Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryRuntime,
		Message:  "Host handle mismatch",
		Detail:   "An instance's target handle does not match its expected kind. The subtree's mutation was aborted.",
	},
	"E101": {
		Category: CategoryRuntime,
		Message:  "Prop diff failed",
		Detail:   "Applying a prop delta to the target failed; the target may be partially updated.",
	},

	// ============================================
	// Protocol Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryProtocol,
		Message:  "Malformed client frame",
		Detail:   "A frame received from the thin client could not be decoded.",
	},
	"E201": {
		Category: CategoryProtocol,
		Message:  "Unknown event target",
		Detail:   "The client referenced a node id with no registered listener.",
	},

	// ============================================
	// Config Errors (E300-E399)
	// ============================================

	"E300": {
		Category:   CategoryConfig,
		Message:    "Invalid server configuration",
		Suggestion: "Check loom.yml against the documented fields.",
	},
}
