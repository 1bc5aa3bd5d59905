// Package session drives one interactive advisor run over a line-oriented console.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/smart-spoon-core/advisor/internal/advisor/graph"
	"github.com/smart-spoon-core/advisor/internal/advisor/imaging"
	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	"github.com/smart-spoon-core/advisor/internal/advisor/profile"
	"github.com/smart-spoon-core/advisor/internal/advisor/transcript"
	logx "github.com/smart-spoon-core/advisor/pkg/logger"
)

// ErrNoImage means the user gave no usable image path.
var ErrNoImage = errors.New("no valid image file found")

// maxLineBytes caps one answer; the rest of an overlong line is discarded.
const maxLineBytes = 4096

// SignatureFunc turns an image path into a color signature.
type SignatureFunc func(path string) (model.ColorSignature, error)

type Deps struct {
	Runner     graph.Runner
	Transcript *transcript.Manager
	In         io.Reader
	Out        io.Writer

	// Optional; default to imaging.SignatureFromFile and uuid.NewString.
	Signature    SignatureFunc
	NewSessionID func() string
}

type Driver struct {
	runner     graph.Runner
	transcript *transcript.Manager
	in         *bufio.Reader
	out        io.Writer
	signature  SignatureFunc
	newID      func() string
	title      cases.Caser
}

func New(deps Deps) *Driver {
	d := &Driver{
		runner:     deps.Runner,
		transcript: deps.Transcript,
		in:         bufio.NewReader(deps.In),
		out:        deps.Out,
		signature:  deps.Signature,
		newID:      deps.NewSessionID,
		title:      cases.Title(language.English),
	}
	if d.signature == nil {
		d.signature = func(path string) (model.ColorSignature, error) {
			return imaging.SignatureFromFile(path)
		}
	}
	if d.newID == nil {
		d.newID = uuid.NewString
	}
	return d
}

// Run shows the main menu until the user exits or input ends.
func (d *Driver) Run(ctx context.Context) error {
	d.println("=== Smart Spoon Food Advisor ===")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		d.println("\nMain Menu:")
		d.println("1. Analyze food")
		d.println("2. Exit")
		choice, err := d.ask("Select option (1-2): ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err := d.Analyze(ctx)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
		case "2":
			d.println("\nThank you for using Smart Spoon!")
			return nil
		default:
			d.println("Invalid choice, please try again")
		}
	}
}

// Analyze runs one food analysis workflow: image, profile, recommendation and
// the feedback loop. It returns io.EOF when input ends part way through.
func (d *Driver) Analyze(ctx context.Context) error {
	sessionID := d.newID()
	logx.Debug().Str("session_id", sessionID).Msg("analysis started")

	d.println("\n=== Food Analysis ===")
	path, err := d.ask("Enter the path of your food photo (.png/.jpg/.jpeg): ")
	if err != nil {
		return err
	}
	sig, sigErr := d.readSignature(path)
	if errors.Is(sigErr, ErrNoImage) || errors.Is(sigErr, imaging.ErrUnsupportedFormat) {
		d.println("No valid image file found")
		return nil
	}
	d.println("\nFood image ready!")

	user, err := d.askProfile()
	if err != nil {
		return err
	}

	d.println("\nAnalyzing your food...")
	analysis, err := d.runner.Analyze(ctx, model.AnalysisInput{
		SessionID:    sessionID,
		Signature:    sig,
		SignatureErr: sigErr,
		Profile:      user,
	})
	if err != nil {
		return fmt.Errorf("analyze food: %w", err)
	}

	defer func() {
		if err := d.transcript.Close(context.WithoutCancel(ctx), sessionID); err != nil {
			logx.Warn().Err(err).Str("session_id", sessionID).Msg("failed to delete session record")
		}
	}()
	if err := d.transcript.Begin(ctx, sessionID, *analysis); err != nil {
		return fmt.Errorf("record analysis: %w", err)
	}

	d.printAnalysis(*analysis)

	if err := d.feedbackLoop(ctx, sessionID, analysis.Match.Profile); err != nil {
		return err
	}

	summary, err := d.transcript.Summarize(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("summarize session: %w", err)
	}
	d.printSummary(*summary)
	logx.Debug().Str("session_id", sessionID).Int("rounds", summary.TotalRounds).Msg("analysis finished")

	d.println("\nThank you for using Smart Spoon!")
	d.println("Enjoy your perfectly flavored meal!")
	return nil
}

func (d *Driver) readSignature(path string) (model.ColorSignature, error) {
	if path == "" {
		return model.ColorSignature{}, ErrNoImage
	}
	return d.signature(path)
}

func (d *Driver) askProfile() (model.UserProfile, error) {
	d.println("\n=== User Profile ===")

	var a profile.Answers
	questions := []struct {
		prompt string
		dst    *string
	}{
		{prompt: "Please enter your age: ", dst: &a.Age},
		{prompt: "Gender (Male/Female/Other): ", dst: &a.Gender},
		{prompt: "How often do you visit restaurants? (Daily/Weekly/Monthly/Rarely): ", dst: &a.VisitFrequency},
		{prompt: "Any medical conditions? (Hypertension/Kidney Disease/None): ", dst: &a.Medical},
	}

	for _, q := range questions {
		v, err := d.ask(q.prompt)
		if err != nil {
			return model.UserProfile{}, err
		}
		*q.dst = v
	}
	return profile.Parse(a), nil
}

func (d *Driver) printAnalysis(a model.Analysis) {
	food := a.Match.Profile
	d.printf("\nDetected: %s\n", d.title.String(food.Name))
	if a.Match.IsDegraded() {
		d.println("(the photo could not be analysed, this is a best guess)")
	}
	d.printf("Main Ingredients: %s\n", strings.Join(food.Ingredients, ", "))
	d.printf("Typical Salt Content: %s\n", food.SaltLevel)
	d.printf("Spice Level: %s\n", food.SpiceLevel)

	d.println("\n=== Dietary Recommendations ===")
	d.println(a.Recommendation.SaltLine())
	for _, note := range a.Recommendation.Notes {
		d.println(note)
	}
}

// feedbackLoop repeats until the user answers yes. There is no round limit.
func (d *Driver) feedbackLoop(ctx context.Context, sessionID string, food model.FoodProfile) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		last, err := d.transcript.LastRound(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("load last round: %w", err)
		}
		if last != nil {
			d.printf("\nLast time (round %d) you said %q and we suggested: %s\n",
				last.Number, last.Feedback, strings.Join(last.Suggestions, "; "))
		}

		text, err := d.ask("\nHow does your food taste? (ok/need more taste/need less taste/other): ")
		if err != nil {
			return err
		}
		text = strings.ToLower(text)

		adj, err := d.runner.Suggest(ctx, model.FeedbackInput{SessionID: sessionID, Food: food, Feedback: text})
		if err != nil {
			return fmt.Errorf("suggest adjustments: %w", err)
		}
		round, err := d.transcript.RecordRound(ctx, sessionID, text, adj)
		if err != nil {
			return fmt.Errorf("record round: %w", err)
		}

		d.printf("\nSmart Spoon Suggestions (round %d):\n", round)
		for i, sg := range adj.Suggestions {
			d.printf("%d. %s\n", i+1, sg)
		}

		answer, err := d.ask("\nAre you satisfied now? (yes/no): ")
		if err != nil {
			return err
		}
		if strings.ToLower(answer) == "yes" {
			return nil
		}
	}
}

func (d *Driver) printSummary(s transcript.Summary) {
	d.println("\n=== Session Summary ===")
	d.printf("Dish: %s (%s), recommended salt %s\n", d.title.String(s.Food), s.Outcome, s.SaltDosage)
	d.printf("Adjustment rounds: %d\n", s.TotalRounds)
	for _, r := range s.Recent {
		d.printf("Round %d: %q -> %s\n", r.Number, r.Feedback, strings.ReplaceAll(r.Branch, "_", " "))
	}
}

// ask prints prompt and reads one line. Overlong lines are truncated to
// maxLineBytes rather than failing the session.
func (d *Driver) ask(prompt string) (string, error) {
	fmt.Fprint(d.out, prompt)

	var line []byte
	for {
		chunk, more, err := d.in.ReadLine()
		if errors.Is(err, io.EOF) {
			if len(line) > 0 {
				break
			}
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		if room := maxLineBytes - len(line); room > 0 {
			line = append(line, chunk[:min(room, len(chunk))]...)
		}
		if !more {
			break
		}
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(line), "")), nil
}

func (d *Driver) println(s string) {
	fmt.Fprintln(d.out, s)
}

func (d *Driver) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}
