package main

// Small CLI client for the workout tracker service. Keeps the active
// session id in a local state file, so most subcommands can be run
// without repeating -session.

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/repbase/workout-tracker/internal/workout"
	"github.com/repbase/workout-tracker/internal/workout/exercises"
	"github.com/repbase/workout-tracker/internal/workout/sessions"
)

func init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverURL := os.Getenv("WORKOUT_TRACKER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}
	client := newApiClient(strings.TrimRight(serverURL, "/"))

	var err error
	switch os.Args[1] {
	case "templates":
		err = cmdTemplates(ctx, client)
	case "start":
		err = cmdStart(ctx, client, os.Args[2:])
	case "log":
		err = cmdLog(ctx, client, os.Args[2:])
	case "finish":
		err = cmdFinish(ctx, client, os.Args[2:])
	case "sessions":
		err = cmdSessions(ctx, client)
	case "history":
		err = cmdHistory(ctx, client, os.Args[2:])
	case "rest":
		err = cmdRest(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("error: %s", err)
	}
}

func printUsage() {
	log.Println(`usage: workout-cli <command> [flags]

commands:
  templates                 list workout templates and their exercises
  start                     start a new workout session
  log                       log an exercise in a session
  finish                    finish a session (sets its end time)
  sessions                  list workout sessions, most recent first
  history                   show the exercises of a session
  rest                      countdown rest timer, Ctrl-C to cancel

the server address is read from WORKOUT_TRACKER_URL (default http://localhost:8080)`)
}

func cmdTemplates(ctx context.Context, client *apiClient) error {
	allTemplates, err := client.Templates(ctx)
	if err != nil {
		return err
	}

	if len(allTemplates) == 0 {
		log.Println("no templates yet")
		return nil
	}

	for _, t := range allTemplates {
		desc := ""
		if t.Description != nil {
			desc = fmt.Sprintf(" - %s", *t.Description)
		}
		log.Printf("[%d] %s%s", t.ID, t.Name, desc)

		templateExercises, err := client.TemplateExercises(ctx, t.ID)
		if err != nil {
			return err
		}
		for _, e := range templateExercises {
			log.Printf("      %s (%s): %dx%d @ %s", e.Name, e.Category, e.Sets, e.Reps, workout.FormatWeight(e.Weight))
		}
	}
	return nil
}

func cmdStart(ctx context.Context, client *apiClient, args []string) error {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	name := fs.String("name", "", "session name")
	templateID := fs.Int("template", 0, "template id to seed exercises from (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("session name required, use -name")
	}

	req := sessions.AddSessionRequest{Name: *name}
	if *templateID > 0 {
		req.TemplateID = templateID
	}

	session, err := client.CreateSession(ctx, req)
	if err != nil {
		return err
	}
	log.Printf("started %s", session)

	// seeding happens here, not on the server: each planned exercise of
	// the template becomes a logged exercise of the fresh session
	if session.TemplateID != nil {
		templateExercises, err := client.TemplateExercises(ctx, *session.TemplateID)
		if err != nil {
			return fmt.Errorf("get template exercises: %w", err)
		}
		for _, te := range templateExercises {
			seeded, err := client.CreateExercise(ctx, exercises.AddExerciseRequest{
				Name:             te.Name,
				Category:         te.Category,
				Sets:             te.Sets,
				Reps:             te.Reps,
				Weight:           te.Weight,
				WorkoutSessionID: session.ID,
				TemplateID:       session.TemplateID,
			})
			if err != nil {
				return fmt.Errorf("seed exercise [%s]: %w", te.Name, err)
			}
			log.Printf("  seeded: %s, %dx%d @ %s", seeded.Name, seeded.Sets, seeded.Reps, workout.FormatWeight(seeded.Weight))
		}
	}

	state, err := loadState()
	if err != nil {
		return err
	}
	state.ActiveSessionID = &session.ID
	return state.save()
}

func cmdLog(ctx context.Context, client *apiClient, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	sessionID := fs.Int("session", 0, "session id (default: the active session)")
	name := fs.String("name", "", "exercise name")
	category := fs.String("category", string(workout.CategoryStrength), "exercise category")
	sets := fs.Int("sets", 0, "number of sets")
	reps := fs.Int("reps", 0, "number of reps")
	weight := fs.Float64("weight", 0, "weight")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("exercise name required, use -name")
	}
	if !workout.Category(*category).Valid() {
		return fmt.Errorf("unknown category %q, valid categories: %v", *category, workout.Categories())
	}

	id, err := resolveSessionID(*sessionID)
	if err != nil {
		return err
	}

	exercise, err := client.CreateExercise(ctx, exercises.AddExerciseRequest{
		Name:             *name,
		Category:         workout.Category(*category),
		Sets:             *sets,
		Reps:             *reps,
		Weight:           *weight,
		WorkoutSessionID: id,
	})
	if err != nil {
		return err
	}

	log.Printf("logged: %s (%s), %dx%d @ %s, session %d",
		exercise.Name, exercise.Category, exercise.Sets, exercise.Reps,
		workout.FormatWeight(exercise.Weight), exercise.WorkoutSessionID)
	return nil
}

func cmdFinish(ctx context.Context, client *apiClient, args []string) error {
	fs := flag.NewFlagSet("finish", flag.ExitOnError)
	sessionID := fs.Int("session", 0, "session id (default: the active session)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := resolveSessionID(*sessionID)
	if err != nil {
		return err
	}

	session, err := client.FinishSession(ctx, id, time.Now())
	if err != nil {
		return err
	}
	log.Printf("finished %s", session)

	state, err := loadState()
	if err != nil {
		return err
	}
	if state.ActiveSessionID != nil && *state.ActiveSessionID == id {
		state.ActiveSessionID = nil
		return state.save()
	}
	return nil
}

func cmdSessions(ctx context.Context, client *apiClient) error {
	allSessions, err := client.Sessions(ctx)
	if err != nil {
		return err
	}

	if len(allSessions) == 0 {
		log.Println("no sessions yet")
		return nil
	}

	for _, s := range allSessions {
		log.Println(&s)
	}
	return nil
}

func cmdHistory(ctx context.Context, client *apiClient, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	sessionID := fs.Int("session", 0, "session id (default: the active session)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := resolveSessionID(*sessionID)
	if err != nil {
		return err
	}

	sessionExercises, err := client.SessionExercises(ctx, id)
	if err != nil {
		return err
	}

	if len(sessionExercises) == 0 {
		log.Printf("no exercises logged in session %d", id)
		return nil
	}

	for _, e := range sessionExercises {
		log.Printf("[%s] %s (%s): %dx%d @ %s",
			e.CreatedAt.Format("15:04"), e.Name, e.Category,
			e.Sets, e.Reps, workout.FormatWeight(e.Weight))
	}
	return nil
}

// cmdRest counts down the given rest duration, printing the remaining
// time every second. Ctrl-C cancels the countdown.
func cmdRest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rest", flag.ExitOnError)
	seconds := fs.Int("seconds", 90, "rest duration in seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seconds <= 0 {
		return fmt.Errorf("rest duration must be positive")
	}

	remaining := *seconds
	log.Printf("resting %ds ...", remaining)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("rest cancelled")
			return nil
		case <-ticker.C:
			remaining--
			if remaining <= 0 {
				log.Println("rest over, back to work 🏋️")
				return nil
			}
			log.Printf("%ds ...", remaining)
		}
	}
}

func resolveSessionID(flagValue int) (int, error) {
	if flagValue > 0 {
		return flagValue, nil
	}
	state, err := loadState()
	if err != nil {
		return 0, err
	}
	if state.ActiveSessionID == nil {
		return 0, fmt.Errorf("no active session, start one or use -session")
	}
	return *state.ActiveSessionID, nil
}
