package employee_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/sobrinN/DASH.rh/internal/auth"
	"github.com/sobrinN/DASH.rh/internal/company"
	employeeDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/employee"
	"github.com/sobrinN/DASH.rh/internal/employee"
	employeeSqlite "github.com/sobrinN/DASH.rh/internal/employee/sqlite"
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

var _ = Describe("Employee Handler Integration", func() {
	var (
		db          *gorm.DB
		handler     *employee.Handler
		router      chi.Router
		session     *auth.Session
		freeCompany *company.Company
		proCompany  *company.Company
	)

	// sessionInjector stands in for the auth middleware.
	sessionInjector := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.ContextWithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	doJSON := func(method, target string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, target, &buf)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	createEmployee := func(name string) employee.Employee {
		w := doJSON(http.MethodPost, "/employees", map[string]string{
			"name":     name,
			"position": "Backend Engineer",
		})
		Expect(w.Code).To(Equal(http.StatusCreated))

		var env envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())

		var emp employee.Employee
		Expect(json.Unmarshal(env.Data, &emp)).To(Succeed())
		return emp
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

		err = db.AutoMigrate(&employeeDatamodel.Employee{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := employeeSqlite.NewEmployeeRepository(db)
		service := employee.NewService(repo, slogger)
		handler = employee.NewHandler(service)

		freeCompany = &company.Company{ID: "company-free", Name: "Free Co", OwnerID: "owner-1", Plan: company.PlanFree}
		proCompany = &company.Company{ID: "company-pro", Name: "Pro Co", OwnerID: "owner-2", Plan: company.PlanPro}
		session = &auth.Session{
			User:    auth.User{ID: "owner-1", Email: "owner@example.com"},
			Company: freeCompany,
		}

		r := chi.NewRouter()
		r.Use(sessionInjector)
		r.Get("/employees", handler.ListEmployees)
		r.Post("/employees", handler.CreateEmployee)
		r.Put("/employees/{id}", handler.UpdateEmployee)
		r.Delete("/employees/{id}", handler.DeleteEmployee)
		router = r
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("POST /employees", func() {
		It("should create an employee for the caller's company", func() {
			emp := createEmployee("Ana Souza")

			Expect(emp.ID).NotTo(BeEmpty())
			Expect(emp.CompanyID).To(Equal("company-free"))
			Expect(emp.Stage).To(Equal(employee.StageCaptacao))
		})

		It("should return 400 for a missing position", func() {
			w := doJSON(http.MethodPost, "/employees", map[string]string{"name": "Ana Souza"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 403 when the free plan is full", func() {
			for i := 0; i < employee.FreePlanLimit; i++ {
				createEmployee("Filler")
			}

			w := doJSON(http.MethodPost, "/employees", map[string]string{
				"name":     "One Too Many",
				"position": "Backend Engineer",
			})

			Expect(w.Code).To(Equal(http.StatusForbidden))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
			Expect(env.Error).NotTo(BeNil())
			Expect(env.Error.Code).To(Equal("QUOTA_EXCEEDED"))
			Expect(env.Error.Message).To(ContainSubstring("Upgrade"))
		})

		It("should keep accepting employees beyond the ceiling on the pro plan", func() {
			session.Company = proCompany
			session.User = auth.User{ID: "owner-2", Email: "pro@example.com"}

			for i := 0; i < employee.FreePlanLimit+1; i++ {
				createEmployee("Pro Hire")
			}
		})
	})

	Describe("GET /employees", func() {
		It("should list only the caller's employees", func() {
			createEmployee("Visible")

			other := *session
			other.Company = proCompany
			session = &other
			createEmployee("Hidden From Free")

			session = &auth.Session{User: auth.User{ID: "owner-1"}, Company: freeCompany}
			w := doJSON(http.MethodGet, "/employees", nil)

			Expect(w.Code).To(Equal(http.StatusOK))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())

			var employees []employee.Employee
			Expect(json.Unmarshal(env.Data, &employees)).To(Succeed())
			Expect(employees).To(HaveLen(1))
			Expect(employees[0].Name).To(Equal("Visible"))
		})
	})

	Describe("PUT /employees/{id}", func() {
		It("should update the employee", func() {
			emp := createEmployee("Ana Souza")

			w := doJSON(http.MethodPut, "/employees/"+emp.ID, map[string]string{
				"stage": employee.StageContratado,
			})

			Expect(w.Code).To(Equal(http.StatusOK))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())

			var updated employee.Employee
			Expect(json.Unmarshal(env.Data, &updated)).To(Succeed())
			Expect(updated.Stage).To(Equal(employee.StageContratado))
			Expect(updated.Name).To(Equal("Ana Souza"))
		})

		It("should return 404 for an employee owned by another company", func() {
			emp := createEmployee("Ana Souza")

			session = &auth.Session{User: auth.User{ID: "owner-2"}, Company: proCompany}
			w := doJSON(http.MethodPut, "/employees/"+emp.ID, map[string]string{
				"name": "Hijacked",
			})

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var env envelope
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
			Expect(env.Error.Code).To(Equal("EMPLOYEE_NOT_FOUND"))
		})
	})

	Describe("DELETE /employees/{id}", func() {
		It("should delete the employee", func() {
			emp := createEmployee("Ana Souza")

			w := doJSON(http.MethodDelete, "/employees/"+emp.ID, nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			list := doJSON(http.MethodGet, "/employees", nil)
			var env envelope
			Expect(json.NewDecoder(list.Body).Decode(&env)).To(Succeed())

			var employees []employee.Employee
			Expect(json.Unmarshal(env.Data, &employees)).To(Succeed())
			Expect(employees).To(BeEmpty())
		})

		It("should return 404 for an employee owned by another company", func() {
			emp := createEmployee("Ana Souza")

			session = &auth.Session{User: auth.User{ID: "owner-2"}, Company: proCompany}
			w := doJSON(http.MethodDelete, "/employees/"+emp.ID, nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
