package config

const (
	// MaxDocumentNameLength is the maximum length for document names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxDocumentNameLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	// Same as document names for consistency.
	MaxFolderNameLength = 255

	// MaxRejectionReasonLength caps moderator feedback on rejected uploads.
	MaxRejectionReasonLength = 1000

	// DefaultRetentionDays is how long a trashed document is kept before it
	// becomes eligible for permanent removal.
	DefaultRetentionDays = 30
)
