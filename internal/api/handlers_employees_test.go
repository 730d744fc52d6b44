package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"employee-registry/internal/dto"
)

type fakeEmployeeRepo struct {
	records  []dto.Employee
	failWith error
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e dto.Employee) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, r := range f.records {
		if r.EmployeeID == e.EmployeeID || r.Email == e.Email {
			return dto.ErrAlreadyExists
		}
	}
	f.records = append(f.records, e)
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e dto.Employee) error {
	if f.failWith != nil {
		return f.failWith
	}
	for i, r := range f.records {
		if r.EmployeeID != e.EmployeeID && r.Email == e.Email {
			return dto.ErrAlreadyExists
		}
		if r.EmployeeID == e.EmployeeID {
			f.records[i] = e
			return nil
		}
	}
	return dto.ErrNotFound
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, employeeID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	for i, r := range f.records {
		if r.EmployeeID == employeeID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return dto.ErrNotFound
}

func (f *fakeEmployeeRepo) Get(_ context.Context, employeeID string) (*dto.Employee, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			out := r
			return &out, nil
		}
	}
	return nil, dto.ErrNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]dto.Employee, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.records, nil
}

type producedEvent struct {
	Kind       string
	EmployeeID string
}

type fakeProducer struct {
	produced []producedEvent
}

func (f *fakeProducer) ProduceCreated(_ context.Context, _ uuid.UUID, e dto.Employee) error {
	f.produced = append(f.produced, producedEvent{Kind: "created", EmployeeID: e.EmployeeID})
	return nil
}

func (f *fakeProducer) ProduceUpdated(_ context.Context, _ uuid.UUID, e dto.Employee) error {
	f.produced = append(f.produced, producedEvent{Kind: "updated", EmployeeID: e.EmployeeID})
	return nil
}

func (f *fakeProducer) ProduceDeleted(_ context.Context, _ uuid.UUID, employeeID string) error {
	f.produced = append(f.produced, producedEvent{Kind: "deleted", EmployeeID: employeeID})
	return nil
}

type fakeEventsRepo struct{}

func (fakeEventsRepo) ListEvents(_ context.Context) ([]dto.ChangeEvent, error) { return nil, nil }
func (fakeEventsRepo) ListDLQ(_ context.Context) ([]dto.DLQMessage, error)    { return nil, nil }
func (fakeEventsRepo) ResetAll(_ context.Context) error                       { return nil }

func newTestService() (*Service, *fakeEmployeeRepo, *fakeProducer) {
	repo := &fakeEmployeeRepo{}
	prod := &fakeProducer{}

	s := NewService(ServiceDeps{
		Port:         0,
		EmployeeRepo: repo,
		EventsRepo:   fakeEventsRepo{},
		Producer:     prod,
	})

	return s, repo, prod
}

func postCtx(t *testing.T, uri string, body any) *fasthttp.RequestCtx {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI(uri)
	ctx.Request.SetBody(b)

	return &ctx
}

func decodeBody[T any](t *testing.T, ctx *fasthttp.RequestCtx) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &out))
	return out
}

func TestCreateEmployee(t *testing.T) {
	s, repo, prod := newTestService()

	ctx := postCtx(t, "/employees", validReq())
	s.createEmployee(ctx)

	assert.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
	require.Len(t, repo.records, 1)
	assert.Equal(t, "Anna Maria Ivanova", repo.records[0].Name)
	assert.Equal(t, []producedEvent{{Kind: "created", EmployeeID: "AB1-CD2-EF3-GH4"}}, prod.produced)
}

func TestCreateEmployee_DuplicateConflict(t *testing.T) {
	s, repo, _ := newTestService()

	first := postCtx(t, "/employees", validReq())
	s.createEmployee(first)
	require.Equal(t, fasthttp.StatusCreated, first.Response.StatusCode())

	// Same employee id, different email: must conflict and must not insert.
	dup := validReq()
	dup.Email = "other@example.com"
	second := postCtx(t, "/employees", dup)
	s.createEmployee(second)

	assert.Equal(t, fasthttp.StatusConflict, second.Response.StatusCode())
	body := decodeBody[errorResponse](t, second)
	assert.Equal(t, "Employee ID and/or Email already exists.", body.Message)

	var list fasthttp.RequestCtx
	s.listEmployees(&list)
	rows := decodeBody[[]dto.Employee](t, &list)
	require.Len(t, rows, 1)
	assert.Equal(t, "anna@example.com", rows[0].Email)
	require.Len(t, repo.records, 1)
}

func TestCreateEmployee_ValidationErrors(t *testing.T) {
	s, repo, prod := newTestService()

	req := validReq()
	req.FirstName = ""
	req.Phone = "123"

	ctx := postCtx(t, "/employees", req)
	s.createEmployee(ctx)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	body := decodeBody[validationResponse](t, ctx)
	assert.Equal(t, "First Name is required.", body.Message)
	assert.Equal(t, "First Name is required.", body.Errors["firstName"])
	assert.Equal(t, "Phone number should be at least 7 digits long.", body.Errors["phone"])

	assert.Empty(t, repo.records, "invalid payload must not reach storage")
	assert.Empty(t, prod.produced)
}

func TestUpdateEmployee_ChangesRoleOnly(t *testing.T) {
	s, repo, prod := newTestService()

	create := postCtx(t, "/employees", validReq())
	s.createEmployee(create)
	require.Equal(t, fasthttp.StatusCreated, create.Response.StatusCode())

	upd := validReq()
	upd.Role = "Staff Engineer"
	ctx := postCtx(t, "/employees/AB1-CD2-EF3-GH4", upd)
	ctx.SetUserValue("employee_id", "AB1-CD2-EF3-GH4")
	s.updateEmployee(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.Len(t, repo.records, 1)
	got := repo.records[0]
	assert.Equal(t, "Staff Engineer", got.Role)
	assert.Equal(t, "AB1-CD2-EF3-GH4", got.EmployeeID)
	assert.Equal(t, "Anna Maria Ivanova", got.Name)
	assert.Equal(t, "anna@example.com", got.Email)

	assert.Equal(t, producedEvent{Kind: "updated", EmployeeID: "AB1-CD2-EF3-GH4"}, prod.produced[len(prod.produced)-1])
}

func TestUpdateEmployee_KeyComesFromPath(t *testing.T) {
	s, repo, _ := newTestService()

	create := postCtx(t, "/employees", validReq())
	s.createEmployee(create)

	// A differing employeeId in the body must not re-key the record.
	upd := validReq()
	upd.EmployeeID = "ZZ9-ZZ9-ZZ9-ZZ9"
	ctx := postCtx(t, "/employees/AB1-CD2-EF3-GH4", upd)
	ctx.SetUserValue("employee_id", "AB1-CD2-EF3-GH4")
	s.updateEmployee(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.Len(t, repo.records, 1)
	assert.Equal(t, "AB1-CD2-EF3-GH4", repo.records[0].EmployeeID)
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	s, _, prod := newTestService()

	ctx := postCtx(t, "/employees/AB1-CD2-EF3-GH4", validReq())
	ctx.SetUserValue("employee_id", "AB1-CD2-EF3-GH4")
	s.updateEmployee(ctx)

	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	assert.Empty(t, prod.produced)
}

func TestDeleteEmployee(t *testing.T) {
	s, repo, prod := newTestService()

	create := postCtx(t, "/employees", validReq())
	s.createEmployee(create)
	require.Len(t, repo.records, 1)

	var ctx fasthttp.RequestCtx
	ctx.SetUserValue("employee_id", "AB1-CD2-EF3-GH4")
	s.deleteEmployee(&ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Empty(t, repo.records)
	assert.Equal(t, producedEvent{Kind: "deleted", EmployeeID: "AB1-CD2-EF3-GH4"}, prod.produced[len(prod.produced)-1])
}

func TestDeleteEmployee_MissingRecordIsNotFound(t *testing.T) {
	s, repo, _ := newTestService()

	create := postCtx(t, "/employees", validReq())
	s.createEmployee(create)

	var ctx fasthttp.RequestCtx
	ctx.SetUserValue("employee_id", "NO9-SU3-CH1-REC")
	s.deleteEmployee(&ctx)

	// Zero rows affected reports not-found instead of silent success; the
	// existing record set is untouched.
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	require.Len(t, repo.records, 1)
}

func TestGetEmployee(t *testing.T) {
	s, _, _ := newTestService()

	create := postCtx(t, "/employees", validReq())
	s.createEmployee(create)

	var ctx fasthttp.RequestCtx
	ctx.SetUserValue("employee_id", "AB1-CD2-EF3-GH4")
	s.getEmployee(&ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	got := decodeBody[dto.Employee](t, &ctx)
	assert.Equal(t, "Anna Maria Ivanova", got.Name)

	var missing fasthttp.RequestCtx
	missing.SetUserValue("employee_id", "ZZ9-ZZ9-ZZ9-ZZ9")
	s.getEmployee(&missing)
	assert.Equal(t, fasthttp.StatusNotFound, missing.Response.StatusCode())
}

func TestValidateHandler_FullPayload(t *testing.T) {
	s, _, _ := newTestService()

	req := validReq()
	req.Gender = "Unknown"
	ctx := postCtx(t, "/employees/validate", req)
	s.validateHandler(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	res := decodeBody[validateResult](t, ctx)
	assert.False(t, res.Valid)
	assert.Equal(t, "Gender must be Male, Female or Other.", res.Errors["gender"])
}

func TestValidateHandler_SingleField(t *testing.T) {
	s, _, _ := newTestService()

	// Broken email, but only firstName is being checked.
	req := validReq()
	req.Email = "nope"
	ctx := postCtx(t, "/employees/validate?field=firstName", req)
	s.validateHandler(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	res := decodeBody[validateResult](t, ctx)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)

	ctx = postCtx(t, "/employees/validate?field=email", req)
	s.validateHandler(ctx)
	res = decodeBody[validateResult](t, ctx)
	assert.False(t, res.Valid)
	assert.Equal(t, "Email must be a valid email address.", res.Errors["email"])

	ctx = postCtx(t, "/employees/validate?field=salary", req)
	s.validateHandler(ctx)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}
