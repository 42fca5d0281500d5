package handler

const (
	errInternalServer   = "Internal server error"
	errNotAuthenticated = "Not authenticated"

	errEmailPasswordRequired = "Email and password are required"
	errWeakPassword          = "Password must be at least 8 characters"
	errEmailTaken            = "Email already in use"
	errInvalidCredentials    = "Invalid credentials"
	errNotVerified           = "Please verify your email before signing in"
	errAlreadyVerified       = "User already verified"
	errUserNotFound          = "User not found"
	errMissingToken          = "Missing token"
	errTokenInvalid          = "Invalid or expired token"
	errTokenExpired          = "Token has expired"

	errJobNotFound      = "Job not found"
	errProfileNotFound  = "Profile not found"
	errDocumentNotFound = "Document not found"
	errNoFileUploaded   = "No file uploaded"
	errFileTooLarge     = "File exceeds the upload size limit"
)
