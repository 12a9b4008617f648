package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/sobrinN/DASH.rh/internal/auth"
	authSqlite "github.com/sobrinN/DASH.rh/internal/auth/sqlite"
	"github.com/sobrinN/DASH.rh/internal/company"
	companySqlite "github.com/sobrinN/DASH.rh/internal/company/sqlite"
	companyDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/company"
	userDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/user"
)

// envelope mirrors the wire format for decoding in assertions.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var _ = Describe("Auth Handler Integration", func() {
	var (
		db      *gorm.DB
		service *auth.Service
		handler *auth.Handler
	)

	signUpBody := func(email, password, companyName string) *bytes.Buffer {
		payload, err := json.Marshal(map[string]string{
			"email":       email,
			"password":    password,
			"companyName": companyName,
		})
		Expect(err).NotTo(HaveOccurred())
		return bytes.NewBuffer(payload)
	}

	signUp := func(email string) envelope {
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", signUpBody(email, "secure_password", "Test Co"))
		w := httptest.NewRecorder()
		handler.SignUp(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var env envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		return env
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		err = db.AutoMigrate(&userDatamodel.User{}, &companyDatamodel.Company{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		userRepo := authSqlite.NewUserRepository(db)
		companyRepo := companySqlite.NewCompanyRepository(db)
		companyService := company.NewService(companyRepo, slogger)
		tokenGen := auth.NewJWTTokenGenerator("integration-test-secret-0123456789ab", time.Hour)
		service = auth.NewService(userRepo, companyService, tokenGen, bcrypt.MinCost, slogger)
		handler = auth.NewHandler(service)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("POST /auth/signup", func() {
		It("should create the account and return user, company and token", func() {
			env := signUp("new@example.com")
			Expect(env.Error).To(BeNil())

			var payload auth.AuthResponse
			Expect(json.Unmarshal(env.Data, &payload)).To(Succeed())
			Expect(payload.User.Email).To(Equal("new@example.com"))
			Expect(payload.Company.Plan).To(Equal(company.PlanFree))
			Expect(payload.Session.AccessToken).NotTo(BeEmpty())
		})

		It("should return 409 for a duplicate email", func() {
			signUp("dup@example.com")

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", signUpBody("dup@example.com", "secure_password", "Other Co"))
			w := httptest.NewRecorder()
			handler.SignUp(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
			Expect(env.Error).NotTo(BeNil())
			Expect(env.Error.Code).To(Equal("EMAIL_TAKEN"))
		})

		It("should return 400 for an invalid email", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", signUpBody("not-an-email", "secure_password", "Test Co"))
			w := httptest.NewRecorder()
			handler.SignUp(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString("{"))
			w := httptest.NewRecorder()
			handler.SignUp(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /auth/signin", func() {
		BeforeEach(func() {
			signUp("owner@example.com")
		})

		signIn := func(email, password string) *httptest.ResponseRecorder {
			payload, err := json.Marshal(map[string]string{"email": email, "password": password})
			Expect(err).NotTo(HaveOccurred())
			req := httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewBuffer(payload))
			w := httptest.NewRecorder()
			handler.SignIn(w, req)
			return w
		}

		It("should return a session for valid credentials", func() {
			w := signIn("owner@example.com", "secure_password")
			Expect(w.Code).To(Equal(http.StatusOK))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())

			var payload auth.AuthResponse
			Expect(json.Unmarshal(env.Data, &payload)).To(Succeed())
			Expect(payload.Session.AccessToken).NotTo(BeEmpty())
			Expect(payload.Company.Name).To(Equal("Test Co"))
		})

		It("should not reveal whether the email exists", func() {
			unknownEmail := signIn("nobody@example.com", "secure_password")
			wrongPassword := signIn("owner@example.com", "wrong_password")

			Expect(unknownEmail.Code).To(Equal(http.StatusUnauthorized))
			Expect(wrongPassword.Code).To(Equal(http.StatusUnauthorized))

			var envA, envB envelope
			Expect(json.NewDecoder(unknownEmail.Body).Decode(&envA)).To(Succeed())
			Expect(json.NewDecoder(wrongPassword.Body).Decode(&envB)).To(Succeed())
			Expect(envA.Error.Message).To(Equal(envB.Error.Message))
			Expect(envA.Error.Code).To(Equal(envB.Error.Code))
		})
	})

	Describe("GET /auth/session", func() {
		var token string

		BeforeEach(func() {
			env := signUp("session@example.com")
			var payload auth.AuthResponse
			Expect(json.Unmarshal(env.Data, &payload)).To(Succeed())
			token = payload.Session.AccessToken
		})

		It("should resolve a valid token", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.Session(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())

			var payload auth.SessionResponse
			Expect(json.Unmarshal(env.Data, &payload)).To(Succeed())
			Expect(payload.Session).NotTo(BeNil())
			Expect(payload.Session.User.Email).To(Equal("session@example.com"))
			Expect(payload.Company).NotTo(BeNil())
		})

		It("should answer 200 with a null session when the header is missing", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
			w := httptest.NewRecorder()
			handler.Session(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())

			var payload auth.SessionResponse
			Expect(json.Unmarshal(env.Data, &payload)).To(Succeed())
			Expect(payload.Session).To(BeNil())
		})

		It("should answer 200 with a null session for a garbage token", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
			req.Header.Set("Authorization", "Bearer garbage.token.value")
			w := httptest.NewRecorder()
			handler.Session(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())

			var payload auth.SessionResponse
			Expect(json.Unmarshal(env.Data, &payload)).To(Succeed())
			Expect(payload.Session).To(BeNil())
		})
	})

	Describe("AuthMiddleware", func() {
		var token string

		BeforeEach(func() {
			env := signUp("protected@example.com")
			var payload auth.AuthResponse
			Expect(json.Unmarshal(env.Data, &payload)).To(Succeed())
			token = payload.Session.AccessToken
		})

		probe := func(captured **auth.Session) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if session, ok := auth.SessionFromContext(r.Context()); ok {
					*captured = session
				}
				w.WriteHeader(http.StatusOK)
			})
		}

		It("should bind the resolved session to the request context", func() {
			var captured *auth.Session
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(probe(&captured)).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(captured).NotTo(BeNil())
			Expect(captured.User.Email).To(Equal("protected@example.com"))
			Expect(captured.Company).NotTo(BeNil())
			Expect(captured.Company.OwnerID).To(Equal(captured.User.ID))
		})

		It("should reject a request without a token", func() {
			var captured *auth.Session
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(probe(&captured)).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(captured).To(BeNil())
		})

		It("should reject a token signed with another secret", func() {
			otherGen := auth.NewJWTTokenGenerator("a-completely-different-secret-value!", time.Hour)
			forged, err := otherGen.GenerateToken("someone", "someone@example.com")
			Expect(err).NotTo(HaveOccurred())

			var captured *auth.Session
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+forged)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(probe(&captured)).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(captured).To(BeNil())
		})
	})

	Describe("company management endpoints", func() {
		var session *auth.Session

		BeforeEach(func() {
			var err error
			session, err = service.SignUp(auth.SignUpDTO{
				Email:       "manager@example.com",
				Password:    "secure_password",
				CompanyName: "Managed Co",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		withSession := func(req *http.Request) *http.Request {
			ctx := auth.ContextWithSession(context.Background(), session)
			return req.WithContext(ctx)
		}

		It("should change the plan tier", func() {
			payload, _ := json.Marshal(map[string]string{"plan": company.PlanPro})
			req := withSession(httptest.NewRequest(http.MethodPut, "/auth/company/plan", bytes.NewBuffer(payload)))
			w := httptest.NewRecorder()

			handler.UpdateCompanyPlan(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())

			var comp company.Company
			Expect(json.Unmarshal(env.Data, &comp)).To(Succeed())
			Expect(comp.Plan).To(Equal(company.PlanPro))
		})

		It("should reject an unknown plan", func() {
			payload, _ := json.Marshal(map[string]string{"plan": "enterprise"})
			req := withSession(httptest.NewRequest(http.MethodPut, "/auth/company/plan", bytes.NewBuffer(payload)))
			w := httptest.NewRecorder()

			handler.UpdateCompanyPlan(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should rename the company", func() {
			payload, _ := json.Marshal(map[string]string{"name": "Renamed Co"})
			req := withSession(httptest.NewRequest(http.MethodPut, "/auth/company/name", bytes.NewBuffer(payload)))
			w := httptest.NewRecorder()

			handler.UpdateCompanyName(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())

			var comp company.Company
			Expect(json.Unmarshal(env.Data, &comp)).To(Succeed())
			Expect(comp.Name).To(Equal("Renamed Co"))
		})

		It("should return 401 without a session in context", func() {
			payload, _ := json.Marshal(map[string]string{"name": "Renamed Co"})
			req := httptest.NewRequest(http.MethodPut, "/auth/company/name", bytes.NewBuffer(payload))
			w := httptest.NewRecorder()

			handler.UpdateCompanyName(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
