package middleware

import (
	"context"
	"net/http"

	"linkup_server/models"
	"linkup_server/services"
	"linkup_server/utils"

	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	userKey     contextKey = "user"
	attendeeKey contextKey = "attendee"
)

// AuthMiddleware verifies access tokens and attaches the authenticated
// principal to the request context. Registered users carry an id/email
// token; visitors who signed up as attendees carry an attendee-only token.
type AuthMiddleware struct {
	Tokens    *utils.TokenManager
	Users     *services.UserService
	Attendees *services.AttendeeService
}

// NewAuthMiddleware wires the middleware with its dependencies.
func NewAuthMiddleware(tokens *utils.TokenManager, users *services.UserService, attendees *services.AttendeeService) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens, Users: users, Attendees: attendees}
}

// Require rejects requests without a valid principal.
func (am *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, ok := am.resolve(w, r)
		if !ok {
			return
		}
		next(w, r.WithContext(ctx))
	}
}

// RequireUser rejects requests not authenticated as a registered user.
// Attendee-only visitor tokens are not enough.
func (am *AuthMiddleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return am.Require(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			utils.SendError(w, "Authentication required",
				[]utils.FieldError{{Field: "token", Message: "A user token is required"}}, http.StatusUnauthorized)
			return
		}
		next(w, r)
	})
}

// Optional attaches the principal when a valid token is present and lets
// anonymous requests through untouched.
func (am *AuthMiddleware) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := utils.ExtractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			next(w, r)
			return
		}
		claims, err := am.Tokens.Verify(token)
		if err != nil {
			next(w, r)
			return
		}
		ctx, err := am.attach(r.Context(), claims)
		if err != nil || ctx == nil {
			next(w, r)
			return
		}
		next(w, r.WithContext(ctx))
	}
}

func (am *AuthMiddleware) resolve(w http.ResponseWriter, r *http.Request) (context.Context, bool) {
	token := utils.ExtractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		utils.SendError(w, "Authentication required",
			[]utils.FieldError{{Field: "token", Message: "No token provided"}}, http.StatusUnauthorized)
		return nil, false
	}

	claims, err := am.Tokens.Verify(token)
	if err != nil {
		utils.SendError(w, "Authentication failed",
			[]utils.FieldError{{Field: "token", Message: "Invalid or expired token"}}, http.StatusUnauthorized)
		return nil, false
	}

	ctx, err := am.attach(r.Context(), claims)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve authenticated principal")
		utils.ServerError(w, "Authentication error")
		return nil, false
	}
	if ctx == nil {
		utils.SendError(w, "Authentication failed",
			[]utils.FieldError{{Field: "token", Message: "User not found"}}, http.StatusUnauthorized)
		return nil, false
	}
	return ctx, true
}

// attach loads the principal named by the claims. A nil context without an
// error means the token was valid but its subject no longer exists.
func (am *AuthMiddleware) attach(ctx context.Context, claims *utils.Claims) (context.Context, error) {
	if claims.ID != "" {
		user, err := am.Users.GetUserByID(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if user == nil || !user.IsActive {
			return nil, nil
		}
		ctx = context.WithValue(ctx, userKey, user)
	}
	if claims.AttendeeID != "" {
		attendee, err := am.Attendees.GetAttendeeByID(ctx, claims.AttendeeID)
		if err != nil {
			return nil, err
		}
		if attendee == nil || !attendee.IsActive {
			return nil, nil
		}
		ctx = context.WithValue(ctx, attendeeKey, attendee)
	}
	if claims.ID == "" && claims.AttendeeID == "" {
		return nil, nil
	}
	return ctx, nil
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// AttendeeFromContext returns the authenticated attendee, or nil.
func AttendeeFromContext(ctx context.Context) *models.Attendee {
	attendee, _ := ctx.Value(attendeeKey).(*models.Attendee)
	return attendee
}
