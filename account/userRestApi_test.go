package account_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"tracker/account"
	"tracker/bizerror"
	"tracker/misc"
	"tracker/session"
	"tracker/testinfra"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("UserRestApi", func() {
	var (
		router *gin.Engine
	)
	BeforeEach(func() {
		Expect(account.RegisterBindingValidations()).To(BeNil())
		router = gin.Default()
		router.Use(bizerror.ErrorHandling())
		account.RegisterUsersHandler(router)
	})
	AfterEach(func() {
		account.CreateUserFunc = account.CreateUser
	})

	Describe("SignupHandler", func() {
		It("should sign up and set token cookie", func() {
			var creation *account.UserCreation
			account.CreateUserFunc = func(c *account.UserCreation, ctx context.Context) (*account.UserInfo, error) {
				creation = c
				return &account.UserInfo{ID: 12, Name: c.Name, Email: c.Email}, nil
			}
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
				misc.StringReader(`{"name":"ann","email":"ann@example.com","password":"Abc12#"}`))
			status, body, w := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusCreated))
			Expect(body).To(MatchJSON(`{"message":"User registered successfully","user":{"id":"12","name":"ann","email":"ann@example.com"}}`))
			Expect(*creation).To(Equal(account.UserCreation{Name: "ann", Email: "ann@example.com", Password: "Abc12#"}))

			cookies := w.Result().Cookies()
			Expect(len(cookies)).To(Equal(1))
			Expect(cookies[0].Name).To(Equal(session.KeySecToken))
			Expect(cookies[0].HttpOnly).To(BeTrue())
			s, err := session.ActiveTokenManager.Parse(cookies[0].Value)
			Expect(err).To(BeNil())
			Expect(s.Identity).To(Equal(session.Identity{ID: 12, Name: "ann", Email: "ann@example.com"}))
		})

		It("should reject weak password", func() {
			called := false
			account.CreateUserFunc = func(c *account.UserCreation, ctx context.Context) (*account.UserInfo, error) {
				called = true
				return nil, nil
			}
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
				misc.StringReader(`{"name":"ann","email":"ann@example.com","password":"abcdef"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(ContainSubstring(`"code":"common.bad_param"`))
			Expect(body).To(ContainSubstring("strongpassword"))
			Expect(called).To(BeFalse())
		})

		It("should return 409 when email is taken", func() {
			account.CreateUserFunc = func(c *account.UserCreation, ctx context.Context) (*account.UserInfo, error) {
				return nil, bizerror.ErrEmailTaken
			}
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
				misc.StringReader(`{"name":"ann","email":"ann@example.com","password":"Abc12#"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusConflict))
			Expect(body).To(MatchJSON(`{"code":"account.email_taken","message":"an account with this email already exists","data":null}`))
		})

		It("should return 500 when service failed", func() {
			account.CreateUserFunc = func(c *account.UserCreation, ctx context.Context) (*account.UserInfo, error) {
				return nil, errors.New("some error")
			}
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
				misc.StringReader(`{"name":"ann","email":"ann@example.com","password":"Abc12#"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusInternalServerError))
			Expect(body).To(MatchJSON(`{"code":"common.internal_server_error","message":"some error","data":null}`))
		})
	})
})
