package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/touch-of-elegance/internal/config"
	"github.com/deppfellow/touch-of-elegance/internal/errs"
	"github.com/deppfellow/touch-of-elegance/internal/model"
	"github.com/deppfellow/touch-of-elegance/internal/repository"
	"github.com/deppfellow/touch-of-elegance/internal/server"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	logger := zerolog.Nop()
	s, err := server.New(&config.Config{}, &logger, nil)
	require.NoError(t, err)
	return s
}

func newTestServices(t *testing.T) *Services {
	t.Helper()
	s := newTestServer(t)
	svcs, err := NewService(s, repository.NewRepositories(s))
	require.NoError(t, err)
	return svcs
}

func requireHTTPError(t *testing.T, err error, status int, message string) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
	assert.True(t, httpErr.Handled)
	return httpErr
}

func TestCatalogService(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	all := svcs.Catalog.ListServices(ctx)
	require.Len(t, all, 6)

	s, err := svcs.Catalog.GetService(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Dry Cleaning", s.Name)
	assert.Equal(t, model.CategoryCleaning, s.Category)

	for _, raw := range []string{"0", "7", "999", "abc", "1.5", "", "1e2"} {
		_, err := svcs.Catalog.GetService(ctx, raw)
		requireHTTPError(t, err, http.StatusNotFound, ServiceNotFoundMessage)
	}
}

func TestCustomerService_CreateTrimsAndAssignsIDs(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	first, err := svcs.Customers.CreateCustomer(ctx, &CreateCustomerInput{
		FirstName:   "  Alice ",
		LastName:    "\tJohnson",
		PhoneNumber: " 555-0100 ",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Alice", first.FirstName)
	assert.Equal(t, "Johnson", first.LastName)
	assert.Equal(t, "555-0100", first.PhoneNumber)
	assert.WithinDuration(t, time.Now().UTC(), first.CreatedAt, time.Minute)

	second, err := svcs.Customers.CreateCustomer(ctx, &CreateCustomerInput{
		FirstName: "Bob", LastName: "Smith", PhoneNumber: "555-0101",
	})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	got, err := svcs.Customers.GetCustomer(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	assert.Equal(t, []model.Customer{first, second}, svcs.Customers.ListCustomers(ctx))
}

func TestCustomerService_CreateReportsFirstBlankField(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateCustomerInput
		message string
	}{
		{"all missing", CreateCustomerInput{}, "First name is required"},
		{"blank first name", CreateCustomerInput{FirstName: "   ", LastName: "S", PhoneNumber: "1"}, "First name is required"},
		{"blank last name", CreateCustomerInput{FirstName: "A", LastName: " \t", PhoneNumber: "1"}, "Last name is required"},
		{"missing phone", CreateCustomerInput{FirstName: "A", LastName: "S"}, "Phone number is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := newTestServices(t)
			_, err := svcs.Customers.CreateCustomer(context.Background(), &tt.input)
			requireHTTPError(t, err, http.StatusBadRequest, tt.message)
			assert.Empty(t, svcs.Customers.ListCustomers(context.Background()))
		})
	}
}

func TestCustomerService_GetUnknown(t *testing.T) {
	svcs := newTestServices(t)
	for _, raw := range []string{"1", "0", "-3", "x"} {
		_, err := svcs.Customers.GetCustomer(context.Background(), raw)
		requireHTTPError(t, err, http.StatusNotFound, CustomerNotFoundMessage)
	}
}

func TestCustomerService_ConcurrentCreates(t *testing.T) {
	svcs := newTestServices(t)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svcs.Customers.CreateCustomer(context.Background(), &CreateCustomerInput{
				FirstName: "A", LastName: "B", PhoneNumber: "C",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := map[int]bool{}
	for _, c := range svcs.Customers.ListCustomers(context.Background()) {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, seen, n)
}

type recordingSink struct {
	got []model.ContactSubmission
	err error
}

func (s *recordingSink) Record(_ context.Context, submission model.ContactSubmission) error {
	s.got = append(s.got, submission)
	return s.err
}

type panickingSink struct{}

func (panickingSink) Record(context.Context, model.ContactSubmission) error {
	panic("sink exploded")
}

func TestContactService_Submit(t *testing.T) {
	sink := &recordingSink{}
	cs := NewContactService(newTestServer(t), sink)

	msg, err := cs.Submit(context.Background(), &ContactInput{
		Name:    "John",
		Email:   "john@example.com",
		Message: "Hi",
	})
	require.NoError(t, err)
	assert.Equal(t, ContactReceivedMessage, msg)
	require.Len(t, sink.got, 1)
	assert.Equal(t, model.ContactSubmission{Name: "John", Email: "john@example.com", Message: "Hi"}, sink.got[0])
}

func TestContactService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   ContactInput
		message string
	}{
		{"missing name", ContactInput{Email: "a@b.co", Message: "m"}, ContactRequiredMessage},
		{"missing message", ContactInput{Name: "n", Email: "a@b.co"}, ContactRequiredMessage},
		{"missing email", ContactInput{Name: "n", Message: "m"}, ContactRequiredMessage},
		{"missing wins over bad email", ContactInput{Email: "bad", Message: "m"}, ContactRequiredMessage},
		{"bad email", ContactInput{Name: "n", Email: "invalid-email", Message: "m"}, ContactEmailMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			cs := NewContactService(newTestServer(t), sink)

			_, err := cs.Submit(context.Background(), &tt.input)
			requireHTTPError(t, err, http.StatusBadRequest, tt.message)
			assert.Empty(t, sink.got)
		})
	}

	t.Run("whitespace counts as present", func(t *testing.T) {
		cs := NewContactService(newTestServer(t), &recordingSink{})
		_, err := cs.Submit(context.Background(), &ContactInput{Name: " ", Email: "a@b.co", Message: " "})
		assert.NoError(t, err)
	})
}

func TestContactService_SinkFailures(t *testing.T) {
	input := &ContactInput{Name: "n", Email: "a@b.co", Message: "m"}

	t.Run("error", func(t *testing.T) {
		cs := NewContactService(newTestServer(t), &recordingSink{err: errors.New("disk full")})
		_, err := cs.Submit(context.Background(), input)
		httpErr := requireHTTPError(t, err, http.StatusInternalServerError, ContactFailedMessage)
		assert.EqualError(t, httpErr.Unwrap(), "disk full")
	})

	t.Run("panic", func(t *testing.T) {
		cs := NewContactService(newTestServer(t), panickingSink{})
		msg, err := cs.Submit(context.Background(), input)
		assert.Empty(t, msg)
		requireHTTPError(t, err, http.StatusInternalServerError, ContactFailedMessage)
	})
}

func TestLoggerFromPrefersContextLogger(t *testing.T) {
	fallback := zerolog.Nop()
	assert.Same(t, &fallback, loggerFrom(context.Background(), &fallback))

	l := zerolog.New(nil).Level(zerolog.InfoLevel)
	ctx := l.WithContext(context.Background())
	assert.NotSame(t, &fallback, loggerFrom(ctx, &fallback))
	assert.Equal(t, zerolog.InfoLevel, loggerFrom(ctx, &fallback).GetLevel())
}
