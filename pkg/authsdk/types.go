package authsdk

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the error envelope every endpoint uses.
type ErrorResponse struct {
	// Error is a machine readable code (e.g., "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// User Types
// ============================================================================

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"pw123"`
}

// UserInfo is the public projection of a user. It never carries the
// password hash.
type UserInfo struct {
	ID       int64  `json:"id" example:"1"`
	FullName string `json:"full_name" example:"Alice A"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"a@x.com"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	UserInfo     UserInfo `json:"user_info"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// CheckTokenRequest is the body of POST /user/auth.
type CheckTokenRequest struct {
	Token string `json:"token"`
}

// CheckTokenResponse reports whether a token is currently acceptable.
// Error holds the reason when IsValid is false (e.g., "expired").
type CheckTokenResponse struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty" example:"expired"`
}

// ============================================================================
// Menu Types
// ============================================================================

// Menu is the navigation document. The menu endpoints answer with a
// one-element array holding it.
type Menu struct {
	Items []MenuSubject `json:"items"`
}

type MenuSubject struct {
	Label string        `json:"label" example:"Maths"`
	Items []MenuLecture `json:"items"`
}

type MenuLecture struct {
	Label string `json:"label" example:"Limits"`
	Icon  string `json:"icon" example:"pi pi-fw pi-bookmark"`
	To    string `json:"to" example:"/lectures/Maths/Limits"`
}

// AddSubjectRequest is the body of POST /subjects/add.
type AddSubjectRequest struct {
	Label string `json:"label" example:"Maths"`
}

// AddLectureRequest is the body of POST /lectures/add.
type AddLectureRequest struct {
	Label   string `json:"label" example:"Limits"`
	Subject string `json:"subject" example:"Maths"`
}

// ============================================================================
// Lecture Content Types
// ============================================================================

// LecturePageRequest is the body of POST /lectures/data/add.
type LecturePageRequest struct {
	Subject string `json:"subject" example:"Maths"`
	Lecture string `json:"lecture" example:"Limits"`
	Page    int64  `json:"page" example:"1"`
	Data    string `json:"data"`
}

// GetLecturePagesRequest is the body of POST /lectures/data/get.
type GetLecturePagesRequest struct {
	Subject string `json:"subject" example:"Maths"`
	Lecture string `json:"lecture" example:"Limits"`
}

// LecturePage is one page of a lecture.
type LecturePage struct {
	Page int64  `json:"page" example:"1"`
	Data string `json:"data"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Menu     string `json:"menu"`
}
