package values

type contextKey string

// ContextTracingKey carries the tracing context through a request.
const ContextTracingKey = contextKey("tracing-context")

// ContextSessionKey carries the authenticated session through a request.
const ContextSessionKey = contextKey("session")

const (
	HeaderRequestID     = "X-Request-Id"
	HeaderRequestSource = "X-Request-Source"
)

// Response statuses
const (
	Success        = "success"
	Created        = "created"
	Error          = "error"
	Failed         = "failed"
	NotFound       = "not-found"
	Conflict       = "conflict"
	NotAuthorised  = "not-authorised"
	NotAllowed     = "not-allowed"
	TokenExpired   = "token-expired"
	BadRequestBody = "bad-request-body"
	Unprocessable  = "unprocessable"
	ActiveLogin    = "active-login"
	InFlight       = "in-flight"
	SystemErr      = "Something went wrong, please try again"
)

// Feed categories
const (
	CategoryAll         = "all"
	CategoryPrestations = "prestations"
	CategoryEvents      = "events"
	CategoryAnnonces    = "annonces"
	CategoryMessages    = "messages"
)

// Post types
const (
	PostTypeText           = "text"
	PostTypeImage          = "image"
	PostTypeVideo          = "video"
	PostTypeMusic          = "music"
	PostTypeEvent          = "event"
	PostTypeServiceRequest = "service_request"
)

// Profile types
const (
	ProfileArtist     = "artist"
	ProfileVenue      = "venue"
	ProfileAgent      = "agent"
	ProfileManager    = "manager"
	ProfileInfluencer = "influencer"
)
