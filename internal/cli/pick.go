package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/explorer"
	"github.com/matzehuels/arcview/pkg/httputil"
	"github.com/matzehuels/arcview/pkg/style"
)

// pickOpts holds the command-line flags for the pick command.
type pickOpts struct {
	input   inputOpts
	remote  string        // base URL of a running explorer
	color   string        // select this color without the picker
	timeout time.Duration // remote request timeout
}

// pickCommand creates the pick command. It drives the style controller from
// the terminal, either in-process against a loaded graph or against a
// running explorer with --remote.
func (c *CLI) pickCommand() *cobra.Command {
	opts := pickOpts{timeout: 10 * time.Second}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Select the node color from the terminal",
		Long: `Open a Red/Green/Blue picker. Each selection goes through the same
controller as the browser page and prints the resulting style patch.

With --remote the selection is sent to a running "arcview serve", and every
open browser tab is updated. Without it, the graph is loaded locally.`,
		Example: `  arcview pick --remote http://localhost:8050
  arcview pick --remote http://localhost:8050 --color Blue
  arcview pick -i example_index -a example_arcs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.remote != "" {
				return c.runPickRemote(cmd.Context(), opts)
			}
			return c.runPickLocal(cmd.Context(), opts)
		},
	}

	addInputFlags(cmd, &opts.input)
	cmd.Flags().StringVar(&opts.remote, "remote", "", "explorer URL, e.g. http://localhost:8050")
	cmd.Flags().StringVar(&opts.color, "color", "", "select this color and exit: Red, Green or Blue")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "remote request timeout")

	return cmd
}

// selectFunc applies one selection and returns the resulting patch.
type selectFunc func(style.Color) (style.Patch, error)

func (c *CLI) runPickLocal(ctx context.Context, opts pickOpts) error {
	app, err := c.loadApp(ctx, opts.input, explorer.Options{})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Controller.Run(ctx, app.Controller.Inbox())
	})
	g.Go(func() error {
		defer cancel()
		return c.pick(ctx, opts.color, app.Controller.Color(), func(col style.Color) (style.Patch, error) {
			return app.Controller.Select(ctx, col)
		})
	})

	return g.Wait()
}

func (c *CLI) runPickRemote(ctx context.Context, opts pickOpts) error {
	client := newStyleClient(opts.remote, opts.timeout)

	current, err := client.current(ctx)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Connected to %s (current %s)", client.base, current)

	return c.pick(ctx, opts.color, current, func(col style.Color) (style.Patch, error) {
		return client.selectColor(ctx, col)
	})
}

// pick applies name directly when set and otherwise runs the picker.
func (c *CLI) pick(ctx context.Context, name string, current style.Color, apply selectFunc) error {
	if name != "" {
		col, err := style.Parse(name)
		if err != nil {
			return err
		}
		patch, err := apply(col)
		if err != nil {
			return err
		}
		printPatch(col, patch)
		return nil
	}

	p := tea.NewProgram(NewColorPickerModel(current, apply), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	if fm, ok := final.(ColorPickerModel); ok && fm.Applied > 0 {
		printSuccess("Applied %d selection(s), node color is %s", fm.Applied, fm.Current)
	}
	return nil
}

func printPatch(col style.Color, patch style.Patch) {
	data, _ := json.Marshal(patch)
	printSuccess("Selected %s %s", swatch(col), col)
	printDetail("%s", data)
}

// =============================================================================
// Remote client
// =============================================================================

type styleClient struct {
	base     string
	http     *http.Client
	attempts int
	backoff  time.Duration
}

func newStyleClient(base string, timeout time.Duration) *styleClient {
	return &styleClient{
		base:     strings.TrimRight(base, "/"),
		http:     &http.Client{Timeout: timeout},
		attempts: 3,
		backoff:  200 * time.Millisecond,
	}
}

func (s *styleClient) current(ctx context.Context) (style.Color, error) {
	var patch style.Patch
	if err := s.do(ctx, http.MethodGet, "/api/style", nil, &patch); err != nil {
		return 0, err
	}
	return style.Parse(patch.Nodes.Color)
}

// selectColor posts a selection. Selections are idempotent, so transient
// failures are retried like reads.
func (s *styleClient) selectColor(ctx context.Context, col style.Color) (style.Patch, error) {
	body, _ := json.Marshal(map[string]string{"color": col.String()})
	var patch style.Patch
	if err := s.do(ctx, http.MethodPost, "/api/style", body, &patch); err != nil {
		return style.Patch{}, err
	}
	return patch, nil
}

// do sends a request and decodes the JSON response into v. Error bodies are
// turned back into coded errors.
func (s *styleClient) do(ctx context.Context, method, path string, body []byte, v any) error {
	return httputil.Retry(ctx, s.attempts, s.backoff, func() error {
		var r io.Reader
		if body != nil {
			r = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, s.base+path, r)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "remote %q", s.base)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := s.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return httputil.Transient(errors.Wrap(errors.ErrCodeUnavailable, err, "%s %s", method, path))
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := decodeError(resp)
			if httputil.RetryableStatus(resp.StatusCode) {
				return httputil.Transient(err)
			}
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeUnavailable, err, "decode %s response", path)
		}
		return nil
	})
}

func decodeError(resp *http.Response) error {
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Code == "" {
		return errors.New(errors.ErrCodeUnavailable, "%s %s: %s",
			resp.Request.Method, resp.Request.URL.Path, resp.Status)
	}
	return errors.New(errors.Code(e.Code), "%s", e.Message)
}
