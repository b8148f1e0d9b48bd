package session

import (
	"net/http"
	"tracker/bizerror"

	"github.com/gin-gonic/gin"
)

const KeySecCtx = "SecCtx"
const KeySecToken = "token"

var (
	ActiveTokenManager                    = NewTokenManager("dev-secret", DefaultTokenExpiration)
	ActiveRevocationStore RevocationStore = NewMemoryRevocationStore()
	CookieSecure                          = false
)

func ExtractSessionFromGinContext(ctx *gin.Context) *Session {
	value, found := ctx.Get(KeySecCtx)
	if !found {
		return &Session{Context: ctx.Request.Context()}
	}
	s0, ok := value.(*Session)
	if !ok || s0.Token == "" {
		return &Session{Context: ctx.Request.Context()}
	}
	s := s0.Clone()
	s.Context = ctx.Request.Context() // trace context
	return &s
}

// SimpleAuthFilter rejects requests without a valid, unrevoked token cookie.
func SimpleAuthFilter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(KeySecToken)
		if err != nil || token == "" {
			panic(bizerror.ErrUnauthenticated)
		}
		s, err := ActiveTokenManager.Parse(token)
		if err != nil {
			panic(bizerror.ErrUnauthenticated)
		}
		revoked, err := ActiveRevocationStore.IsRevoked(ctx.Request.Context(), s.TokenID)
		if err != nil {
			panic(err)
		}
		if revoked {
			panic(bizerror.ErrUnauthenticated)
		}
		InjectSessionIntoGinContext(ctx, s)
		ctx.Next()
	}
}

func InjectSessionIntoGinContext(ctx *gin.Context, secCtx *Session) {
	if secCtx != nil && secCtx.Token != "" {
		ctx.Set(KeySecCtx, secCtx)
	}
}

func SetTokenCookie(ctx *gin.Context, s *Session) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(KeySecToken, s.Token, int(ActiveTokenManager.TTL().Seconds()), "/", "", CookieSecure, true)
}

func ClearTokenCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(KeySecToken, "", -1, "/", "", CookieSecure, true)
}
