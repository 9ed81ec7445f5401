package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

func testRequest() *domain.NotificationRequest {
	return &domain.NotificationRequest{
		ID:        RequestID(domain.NotificationMissedWorkout, "session-1"),
		Kind:      domain.NotificationMissedWorkout,
		OwnerID:   "user-1",
		SubjectID: "session-1",
		TriggerAt: time.Date(2025, 3, 4, 20, 0, 0, 0, time.UTC),
	}
}

func TestEmitRequestsNewNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	req := testRequest()

	ledger := domain.NewMockNotificationLedger(ctrl)
	dispatcher := domain.NewMockNotificationDispatcher(ctrl)

	gomock.InOrder(
		ledger.EXPECT().IsRequested(ctx, req.ID).Return(false, nil),
		dispatcher.EXPECT().Dispatch(ctx, req).Return(nil),
		ledger.EXPECT().MarkRequested(ctx, req).Return(true, nil),
	)

	outcome, err := NewEmitter(dispatcher, ledger, nil).Emit(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeRequested {
		t.Errorf("expected %s, got %s", OutcomeRequested, outcome)
	}
}

func TestEmitSkipsAlreadyRequested(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	req := testRequest()

	ledger := domain.NewMockNotificationLedger(ctrl)
	dispatcher := domain.NewMockNotificationDispatcher(ctrl)

	ledger.EXPECT().IsRequested(ctx, req.ID).Return(true, nil)

	outcome, err := NewEmitter(dispatcher, ledger, nil).Emit(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeAlreadyRequested {
		t.Errorf("expected %s, got %s", OutcomeAlreadyRequested, outcome)
	}
}

func TestEmitLedgerFailuresAreSoft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	req := testRequest()

	ledger := domain.NewMockNotificationLedger(ctrl)
	dispatcher := domain.NewMockNotificationDispatcher(ctrl)

	ledger.EXPECT().IsRequested(ctx, req.ID).Return(false, errors.New("connection refused"))
	dispatcher.EXPECT().Dispatch(ctx, req).Return(nil)
	ledger.EXPECT().MarkRequested(ctx, req).Return(false, errors.New("connection refused"))

	outcome, err := NewEmitter(dispatcher, ledger, nil).Emit(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeRequested {
		t.Errorf("expected %s, got %s", OutcomeRequested, outcome)
	}
}

func TestEmitDispatchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	req := testRequest()
	dispatchErr := errors.New("queue unavailable")

	ledger := domain.NewMockNotificationLedger(ctrl)
	dispatcher := domain.NewMockNotificationDispatcher(ctrl)

	ledger.EXPECT().IsRequested(ctx, req.ID).Return(false, nil)
	dispatcher.EXPECT().Dispatch(ctx, req).Return(dispatchErr)
	ledger.EXPECT().MarkRequested(gomock.Any(), gomock.Any()).Times(0)

	outcome, err := NewEmitter(dispatcher, ledger, nil).Emit(ctx, req)
	if !errors.Is(err, dispatchErr) {
		t.Fatalf("expected dispatch error, got %v", err)
	}
	if outcome != OutcomeFailed {
		t.Errorf("expected %s, got %s", OutcomeFailed, outcome)
	}
}

func TestEmitWithoutLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	req := testRequest()

	dispatcher := domain.NewMockNotificationDispatcher(ctrl)
	dispatcher.EXPECT().Dispatch(ctx, req).Return(nil)

	outcome, err := NewEmitter(dispatcher, nil, nil).Emit(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeRequested {
		t.Errorf("expected %s, got %s", OutcomeRequested, outcome)
	}
}
