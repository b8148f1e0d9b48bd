package testinfra

import (
	"io"
	"net/http"
	"net/http/httptest"
	"tracker/session"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func ExecuteRequest(req *http.Request, handler http.Handler) (int, string, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	bodyBytes, err := io.ReadAll(w.Body)
	if err != nil {
		panic(err)
	}
	return w.Code, string(bodyBytes), w
}

// BuildSession signs a real token for the given user with the active token manager.
func BuildSession(uid types.ID, name, email string) *session.Session {
	s, err := session.ActiveTokenManager.Sign(session.Identity{ID: uid, Name: name, Email: email})
	Expect(err).To(BeNil())
	return s
}

func AuthCookie(s *session.Session) *http.Cookie {
	return &http.Cookie{Name: session.KeySecToken, Value: s.Token}
}
