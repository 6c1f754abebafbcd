package markup_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/jsamuelsen/quotes/internal/markup"
)

// markupContext holds state shared across step definitions within a scenario.
type markupContext struct {
	vars     markup.Variables
	segments []markup.Segment
	renderer *markup.Renderer
}

func (mc *markupContext) reset() {
	mc.vars = nil
	mc.segments = nil
}

func (mc *markupContext) thePeople(list string) error {
	var people []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			people = append(people, name)
		}
	}

	mc.vars = markup.NewVariables(people)

	return nil
}

func (mc *markupContext) iParse(text string) error {
	mc.segments = markup.Parse(text, mc.vars)
	return nil
}

func (mc *markupContext) thereShouldBeSegments(n int) error {
	if len(mc.segments) != n {
		return fmt.Errorf("expected %d segments, got %d: %+v", n, len(mc.segments), mc.segments)
	}

	return nil
}

func (mc *markupContext) segmentShouldBe(pos int, kind, text string) error {
	if pos < 1 || pos > len(mc.segments) {
		return fmt.Errorf("no segment %d in %+v", pos, mc.segments)
	}

	seg := mc.segments[pos-1]
	if seg.Kind.String() != kind {
		return fmt.Errorf("segment %d: expected kind %s, got %s", pos, kind, seg.Kind)
	}

	if seg.Text != text {
		return fmt.Errorf("segment %d: expected text %q, got %q", pos, text, seg.Text)
	}

	return nil
}

func (mc *markupContext) theRenderedTextShouldBe(text string) error {
	got := mc.renderer.Render(mc.segments)
	if got != text {
		return fmt.Errorf("expected rendered text %q, got %q", text, got)
	}

	return nil
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	mc := &markupContext{
		renderer: markup.NewRenderer(markup.NewStyleRenderer(io.Discard, markup.ColorNever)),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		mc.reset()
		return ctx, nil
	})

	ctx.Step(`^the people "([^"]*)"$`, mc.thePeople)
	ctx.Step(`^I parse "([^"]*)"$`, mc.iParse)
	ctx.Step(`^there should be (\d+) segments?$`, mc.thereShouldBeSegments)
	ctx.Step(`^segment (\d+) should be (plain|emphasis) "([^"]*)"$`, mc.segmentShouldBe)
	ctx.Step(`^the rendered text should be "([^"]*)"$`, mc.theRenderedTextShouldBe)
}

// TestFeatures runs the GoDog BDD suite for the markup package.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{"features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
