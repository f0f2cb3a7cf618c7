package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
)

func TestStopsKeepInsertionOrderRegardlessOfArrivalTimes(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedDestination(t, st, mock, models.Destination{ID: "dst-a", Name: "Agrabad"})
	seedDestination(t, st, mock, models.Destination{ID: "dst-b", Name: "Bahaddarhat"})

	svc := &ScheduleService{Store: st}
	// later arrival time added first: order must not change
	if _, err := svc.AddStop("adm-1", "dst-a", "09:40"); err != nil {
		t.Fatalf("add stop a: %v", err)
	}
	if _, err := svc.AddStop("adm-1", "dst-b", "09:10"); err != nil {
		t.Fatalf("add stop b: %v", err)
	}

	draft := svc.Draft("adm-1")
	if len(draft.Stops) != 2 {
		t.Fatalf("stops = %d, want 2", len(draft.Stops))
	}
	if draft.Stops[0].Name != "Agrabad" || draft.Stops[1].Name != "Bahaddarhat" {
		t.Fatalf("stops reordered: %s then %s", draft.Stops[0].Name, draft.Stops[1].Name)
	}
}

func TestAddStopRejectsTripEndpoints(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedDestination(t, st, mock, models.Destination{ID: "dst-a", Name: "Agrabad"})

	svc := &ScheduleService{Store: st}
	svc.SetTrip("adm-1", "bus-1", "dst-a", "", "08:00")

	if _, err := svc.AddStop("adm-1", "dst-a", "08:30"); !domain.IsValidation(err) {
		t.Fatalf("stop matching the origin must be rejected, got %v", err)
	}
}

func TestAddStopValidation(t *testing.T) {
	st, _, closeDB := newTestStore(t)
	defer closeDB()
	svc := &ScheduleService{Store: st}

	if _, err := svc.AddStop("adm-1", "", "08:30"); !domain.IsValidation(err) {
		t.Fatalf("empty destination must be a validation error, got %v", err)
	}
	if _, err := svc.AddStop("adm-1", "dst-x", "08:30"); !domain.IsNotFound(err) {
		t.Fatalf("unknown destination must be not found, got %v", err)
	}
}

func TestStopNameIsSnapshotNotLiveReference(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedDestination(t, st, mock, models.Destination{ID: "dst-a", Name: "Old Market"})

	svc := &ScheduleService{Store: st}
	if _, err := svc.AddStop("adm-1", "dst-a", "08:30"); err != nil {
		t.Fatalf("add stop: %v", err)
	}

	// rename the destination after the stop was added
	seedDestination(t, st, mock, models.Destination{ID: "dst-a", Name: "New Market"})

	draft := svc.Draft("adm-1")
	if draft.Stops[0].Name != "Old Market" {
		t.Fatalf("stop name followed the rename: %q", draft.Stops[0].Name)
	}
}

func TestTripTypeAutofillsCampusEndpoint(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedDestination(t, st, mock, models.Destination{ID: "dst-campus", Name: "BGC Trust Campus", IsCampus: true})

	svc := &ScheduleService{Store: st}
	draft, err := svc.SetTripType("adm-1", models.TripInbound)
	if err != nil {
		t.Fatalf("set trip type: %v", err)
	}
	if draft.DestinationID != "dst-campus" {
		t.Fatalf("inbound should pin destination to campus, got %q", draft.DestinationID)
	}

	draft, err = svc.SetTripType("adm-1", models.TripOutbound)
	if err != nil {
		t.Fatalf("set trip type: %v", err)
	}
	if draft.OriginID != "dst-campus" {
		t.Fatalf("outbound should pin origin to campus, got %q", draft.OriginID)
	}

	if _, err := svc.SetTripType("adm-1", models.TripType("express")); !domain.IsValidation(err) {
		t.Fatalf("unknown trip type must be rejected, got %v", err)
	}
}

func TestSetTripBlankFieldsPreserveCurrentValues(t *testing.T) {
	st, _, closeDB := newTestStore(t)
	defer closeDB()
	svc := &ScheduleService{Store: st}

	svc.SetTrip("adm-1", "bus-1", "dst-a", "dst-b", "08:00")
	draft := svc.SetTrip("adm-1", "", "", "dst-c", "")

	if draft.BusID != "bus-1" || draft.OriginID != "dst-a" || draft.DepartureTime != "08:00" {
		t.Fatalf("blank fields overwrote existing values: %+v", draft)
	}
	if draft.DestinationID != "dst-c" {
		t.Fatalf("explicit destination not applied, got %q", draft.DestinationID)
	}
}

func TestRemoveStopShiftsLaterStopsDown(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedDestination(t, st, mock, models.Destination{ID: "dst-a", Name: "Agrabad"})
	seedDestination(t, st, mock, models.Destination{ID: "dst-b", Name: "Bahaddarhat"})

	svc := &ScheduleService{Store: st}
	svc.AddStop("adm-1", "dst-a", "08:30")
	svc.AddStop("adm-1", "dst-b", "08:50")

	draft, err := svc.RemoveStop("adm-1", 0)
	if err != nil {
		t.Fatalf("remove stop: %v", err)
	}
	if len(draft.Stops) != 1 || draft.Stops[0].Name != "Bahaddarhat" {
		t.Fatalf("unexpected stops after removal: %+v", draft.Stops)
	}

	if _, err := svc.RemoveStop("adm-1", 5); !domain.IsValidation(err) {
		t.Fatalf("out-of-range index must be a validation error, got %v", err)
	}
}

func TestPublishRequiresAllTripFields(t *testing.T) {
	st, _, closeDB := newTestStore(t)
	defer closeDB()
	svc := &ScheduleService{Store: st}

	svc.SetTrip("adm-1", "bus-1", "dst-a", "dst-b", "") // missing departure time
	if _, err := svc.Publish("adm-1"); !domain.IsValidation(err) {
		t.Fatalf("publish without departure time must fail validation, got %v", err)
	}
}

func TestPublishFailureKeepsDraftForRetry(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	svc := &ScheduleService{Store: st, NewID: func() string { return "sch-1" }}

	svc.SetTrip("adm-1", "bus-1", "dst-a", "dst-b", "08:00")

	mock.ExpectExec("INSERT INTO schedules").WillReturnError(errors.New("connection lost"))
	if _, err := svc.Publish("adm-1"); !domain.IsPersistence(err) {
		t.Fatalf("failed publish should surface a persistence error, got %v", err)
	}

	draft := svc.Draft("adm-1")
	if draft.BusID != "bus-1" {
		t.Fatalf("draft should survive a failed publish, got %+v", draft)
	}

	mock.ExpectExec("INSERT INTO schedules").WillReturnResult(sqlmock.NewResult(1, 1))
	schedule, err := svc.Publish("adm-1")
	if err != nil {
		t.Fatalf("retry publish failed: %v", err)
	}
	if schedule.ID != "sch-1" {
		t.Fatalf("unexpected schedule id %q", schedule.ID)
	}

	// successful publish clears the draft
	if cleared := svc.Draft("adm-1"); cleared.BusID != "" {
		t.Fatalf("draft should reset after publish, got %+v", cleared)
	}
}
