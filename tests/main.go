// End-to-end smoke harness: drives the real client stack (credential store,
// session manager, booking workflow, lifecycle controller) against an
// in-process stub of the scheduling API.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"clinica/api"
	"clinica/config"
	"clinica/cron"
	"clinica/models"
	"clinica/services/appointment"
	"clinica/services/availability"
	"clinica/services/booking"
	"clinica/services/session"
	"clinica/store"
	"clinica/stubserver"
	"clinica/utils"
)

func main() {
	config.LoadConfig()

	stub := stubserver.New()
	backend := httptest.NewServer(stub.Router())
	defer backend.Close()

	dir, err := os.MkdirTemp("", "clinica-smoke")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	credStore, err := store.NewSQLiteStore(filepath.Join(dir, "clinica.db"))
	if err != nil {
		log.Fatalf("credential store: %v", err)
	}
	defer credStore.Close()

	client := api.NewClient(backend.URL, credStore)
	sessionSvc := session.NewSessionService(credStore, client)
	client.SetAuthFailureHandler(sessionSvc.HandleAuthFailure)
	lifecycle := appointment.NewLifecycleService(client)

	ctx := context.Background()

	sess := sessionSvc.Bootstrap(ctx)
	fmt.Printf("bootstrap: authenticated=%v preference=%s\n", sess.Authenticated(), sess.Preference)

	// Learn the provider's id first so the booking targets an account we can
	// confirm from later.
	patientEmail, providerEmail, _ := stub.SeedEmails()
	if _, err := sessionSvc.LoginWithPassword(ctx, providerEmail, stubserver.SeedPassword); err != nil {
		log.Fatalf("provider login: %v", err)
	}
	provider, err := client.GetMe(ctx)
	if err != nil {
		log.Fatalf("provider profile: %v", err)
	}

	// Narrow tomorrow's working window through the schedule editor so the
	// booking below lands inside it.
	tomorrow := time.Now().AddDate(0, 0, 1)
	editor := availability.NewScheduleEditor(client)
	if _, err := editor.Load(ctx); err != nil {
		log.Fatalf("load availability: %v", err)
	}
	editor.SetDayHours(models.DayOfWeekFor(tomorrow), "10:00", "12:00")
	if err := editor.Save(ctx); err != nil {
		log.Fatalf("save availability: %v", err)
	}
	fmt.Printf("availability saved for %s\n", availability.DayNames[models.DayOfWeekFor(tomorrow)])

	sess, err = sessionSvc.LoginWithPassword(ctx, patientEmail, stubserver.SeedPassword)
	if err != nil {
		log.Fatalf("patient login: %v", err)
	}
	fmt.Printf("signed in as %s (%s)\n", sess.UserID, sess.Role)

	// Book an appointment for tomorrow through the workflow.
	workflow := booking.NewWorkflow(client, booking.Seed{})
	slotsReady := make(chan struct{}, 4)
	workflow.Subscribe(func(st booking.State) {
		if st == booking.StateSlotsReady {
			slotsReady <- struct{}{}
		}
	})

	doctors, err := workflow.LoadDoctors(ctx)
	if err != nil {
		log.Fatalf("load doctors: %v", err)
	}
	fmt.Printf("directory: %d doctors\n", len(doctors))

	workflow.SelectDoctor(ctx, provider.ID)
	workflow.SelectDate(ctx, tomorrow)
	awaitSlots(workflow, slotsReady, utils.LocalDateString(tomorrow))

	slots := workflow.Slots()
	if len(slots) == 0 {
		log.Fatal("no available slots")
	}
	workflow.SelectSlot(slots[0].Time)
	workflow.SetReason("annual checkup")

	appt, err := workflow.Submit(ctx)
	if err != nil {
		log.Fatalf("submit: %v", err)
	}
	fmt.Printf("created appointment %s at %s (%s)\n", appt.ID, appt.ScheduledAt, appt.Status)

	// Background refresh picks the new appointment up.
	refreshed := make(chan int, 1)
	refresher := cron.NewRefresher(client.ListMyAppointments, "@every 1m", func(appts []models.Appointment) {
		refreshed <- len(appts)
	})
	if err := refresher.Start(); err != nil {
		log.Fatalf("start refresher: %v", err)
	}
	select {
	case n := <-refreshed:
		fmt.Printf("background refresh: %d appointment(s)\n", n)
	case <-time.After(5 * time.Second):
		log.Fatal("timed out waiting for background refresh")
	}
	refresher.Stop()

	// Provider confirms, then cancels with a reason.
	if _, err := sessionSvc.LoginWithPassword(ctx, providerEmail, stubserver.SeedPassword); err != nil {
		log.Fatalf("provider login: %v", err)
	}
	providerCaller := appointment.Caller{UserID: sessionSvc.Snapshot().UserID, Role: models.RoleProvider}

	confirmed, err := lifecycle.Confirm(ctx, providerCaller, *appt)
	if err != nil {
		log.Fatalf("confirm: %v", err)
	}
	fmt.Printf("confirmed: %s\n", confirmed.Status)

	cancelled, err := lifecycle.Cancel(ctx, providerCaller, *confirmed, "doctor unavailable")
	if err != nil {
		log.Fatalf("cancel: %v", err)
	}
	fmt.Printf("cancelled: %s (reason: %s)\n", cancelled.Status, cancelled.CancellationReason)

	// Rebook seeds a fresh workflow with the same doctor and reason.
	seed := lifecycle.Rebook(*cancelled)
	fmt.Printf("rebook seed: doctor=%s reason=%q\n", seed.DoctorID, seed.Reason)

	// Preference toggle round-trip.
	if err := sessionSvc.TogglePreference(ctx); err != nil {
		log.Fatalf("toggle preference: %v", err)
	}
	fmt.Printf("preference now: %s\n", sessionSvc.Snapshot().Preference)

	sessionSvc.SignOut(ctx)
	fmt.Println("smoke flow complete")
}

// awaitSlots waits for a slots-ready notification that belongs to the wanted
// date; earlier fetches may still complete and are ignored.
func awaitSlots(w booking.BookingWorkflow, ch chan struct{}, wantDate string) {
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-ch:
			if w.State() == booking.StateSlotsReady && w.Draft().Date == wantDate {
				return
			}
		case <-deadline:
			log.Fatal("timed out waiting for slots")
		}
	}
}
