package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes/internal/adapters/cli"
	"github.com/jsamuelsen/quotes/internal/adapters/store"
	"github.com/jsamuelsen/quotes/internal/domain"
	"github.com/jsamuelsen/quotes/internal/platform/config"
)

// commandContext holds state shared across step definitions within a scenario.
type commandContext struct {
	configDir string
	book      *store.FileStore
	stdout    bytes.Buffer
	stderr    bytes.Buffer
	err       error
}

// reset points base.yaml at a new quote file for each scenario.
func (cc *commandContext) reset() error {
	bookDir, err := os.MkdirTemp(cc.configDir, "book-")
	if err != nil {
		return err
	}

	path := filepath.Join(bookDir, "database.json")
	base := fmt.Sprintf("store:\n  path: %q\ndisplay:\n  color: never\nlog:\n  level: error\n", path)

	if err := os.WriteFile(filepath.Join(cc.configDir, "base.yaml"), []byte(base), 0o600); err != nil {
		return err
	}

	cc.book = store.New(store.Config{Path: path})
	cc.stdout.Reset()
	cc.stderr.Reset()
	cc.err = nil

	return nil
}

func (cc *commandContext) anEmptyQuoteBook() error {
	return cc.book.Save(context.Background(), &domain.Collection{})
}

func (cc *commandContext) theQuotes(table *godog.Table) error {
	ctx := context.Background()

	c, err := cc.book.Load(ctx)
	if err != nil {
		return err
	}

	for _, row := range table.Rows[1:] {
		fav, err := strconv.ParseBool(row.Cells[1].Value)
		if err != nil {
			return err
		}

		if _, err := c.Add(domain.Quote{Text: row.Cells[0].Value, Favourite: fav}); err != nil {
			return err
		}
	}

	return cc.book.Save(ctx, c)
}

func (cc *commandContext) iRun(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 || args[0] != "quotes" {
		return fmt.Errorf("command line must start with quotes: %q", line)
	}

	cc.stdout.Reset()
	cc.stderr.Reset()
	cc.err = run(args[1:], strings.NewReader(""), &cc.stdout, &cc.stderr)

	return nil
}

func (cc *commandContext) theCommandShouldSucceed() error {
	if cc.err != nil {
		return fmt.Errorf("command failed: %w\nstderr: %s", cc.err, cc.stderr.String())
	}

	return nil
}

func (cc *commandContext) theCommandShouldFailWith(message string) error {
	if cc.err == nil {
		return errors.New("command succeeded, expected a failure")
	}

	if got := cli.FormatError(cc.err); !strings.Contains(got, message) {
		return fmt.Errorf("error %q does not contain %q", got, message)
	}

	return nil
}

func (cc *commandContext) theOutputShouldBe(doc *godog.DocString) error {
	if got := strings.TrimRight(cc.stdout.String(), "\n"); got != doc.Content {
		return fmt.Errorf("output mismatch.\nwant:\n%s\ngot:\n%s", doc.Content, got)
	}

	return nil
}

func (cc *commandContext) theOutputShouldContain(text string) error {
	if !strings.Contains(cc.stdout.String(), text) {
		return fmt.Errorf("output does not contain %q.\nOutput: %s", text, cc.stdout.String())
	}

	return nil
}

func (cc *commandContext) theOutputShouldNotContain(text string) error {
	if strings.Contains(cc.stdout.String(), text) {
		return fmt.Errorf("output contains %q.\nOutput: %s", text, cc.stdout.String())
	}

	return nil
}

func (cc *commandContext) quote(id int) (domain.Quote, error) {
	c, err := cc.book.Load(context.Background())
	if err != nil {
		return domain.Quote{}, err
	}

	return c.Get(id)
}

func (cc *commandContext) quoteShouldBeFavourite(id int, not string) error {
	q, err := cc.quote(id)
	if err != nil {
		return err
	}

	if want := not == ""; q.Favourite != want {
		return fmt.Errorf("quote %d favourite = %t, want %t", id, q.Favourite, want)
	}

	return nil
}

func (cc *commandContext) quoteShouldRead(id int, text string) error {
	q, err := cc.quote(id)
	if err != nil {
		return err
	}

	if q.Text != text {
		return fmt.Errorf("quote %d reads %q, want %q", id, q.Text, text)
	}

	return nil
}

func initializeScenario(configDir string) func(*godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		cc := &commandContext{configDir: configDir}

		ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			return ctx, cc.reset()
		})

		ctx.Step(`^an empty quote book$`, cc.anEmptyQuoteBook)
		ctx.Step(`^the quotes:$`, cc.theQuotes)
		ctx.Step(`^I run "([^"]*)"$`, cc.iRun)
		ctx.Step(`^the command should succeed$`, cc.theCommandShouldSucceed)
		ctx.Step(`^the command should fail with "([^"]*)"$`, cc.theCommandShouldFailWith)
		ctx.Step(`^the output should be:$`, cc.theOutputShouldBe)
		ctx.Step(`^the output should contain "([^"]*)"$`, cc.theOutputShouldContain)
		ctx.Step(`^the output should not contain "([^"]*)"$`, cc.theOutputShouldNotContain)
		ctx.Step(`^quote (\d+) should (not )?be a favourite$`, cc.quoteShouldBeFavourite)
		ctx.Step(`^quote (\d+) should read "([^"]*)"$`, cc.quoteShouldRead)
	}
}

// TestFeatures runs the GoDog BDD suite against the whole command.
func TestFeatures(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, dir)
	t.Setenv(config.EnvProfile, "test")

	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario(dir),
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

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())
	t.Setenv("QUOTES_LOG_LEVEL", "loud")

	err := run([]string{"version"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "log.level")
}

func TestRun_Version(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())

	var stdout bytes.Buffer
	require.NoError(t, run([]string{"version"}, strings.NewReader(""), &stdout, &bytes.Buffer{}))

	assert.Contains(t, stdout.String(), "quotes "+Version)
}
