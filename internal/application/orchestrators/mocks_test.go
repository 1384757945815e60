package orchestrators

import (
	"context"
	"errors"
	"fmt"

	"physionomie/internal/adapters/email"
	"physionomie/internal/domain/activity"
	"physionomie/internal/domain/auth"
	"physionomie/internal/domain/therapist"
	"physionomie/internal/domain/therapy"
)

var errStorage = errors.New("storage failure")

// mockRoster holds the roster in memory with tri-state Load semantics.
type mockRoster struct {
	therapists []therapist.Therapist
	written    bool
	failLoad   bool
}

func (m *mockRoster) Load(context.Context) ([]therapist.Therapist, bool, error) {
	if m.failLoad {
		return nil, false, errStorage
	}
	return m.therapists, m.written, nil
}

func (m *mockRoster) Replace(_ context.Context, therapists []therapist.Therapist) error {
	m.therapists = therapists
	m.written = true
	return nil
}

type mockCatalog struct {
	therapies []therapy.Therapy
	written   bool
}

func (m *mockCatalog) Load(context.Context) ([]therapy.Therapy, bool, error) {
	return m.therapies, m.written, nil
}

func (m *mockCatalog) Replace(_ context.Context, therapies []therapy.Therapy) error {
	m.therapies = therapies
	m.written = true
	return nil
}

type mockLedger struct {
	ledger  activity.Ledger
	written bool
}

func (m *mockLedger) Load(context.Context) (activity.Ledger, bool, error) {
	if m.ledger == nil {
		return activity.Ledger{}, m.written, nil
	}
	return m.ledger, m.written, nil
}

func (m *mockLedger) Replace(_ context.Context, l activity.Ledger) error {
	m.ledger = l
	m.written = true
	return nil
}

type mockSessions struct {
	saved   *auth.Session
	cleared int
}

func (m *mockSessions) Save(_ context.Context, s auth.Session) error {
	m.saved = &s
	return nil
}

func (m *mockSessions) Clear(context.Context) error {
	m.saved = nil
	m.cleared++
	return nil
}

type mockSender struct {
	sent []email.SendRequest
	fail bool
}

func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.fail {
		return email.SendResult{}, errors.New("provider down")
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: fmt.Sprintf("msg-%d", len(m.sent))}, nil
}

// sequentialIDs returns a GenerateID func yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
