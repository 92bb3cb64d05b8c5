package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/pillbox/pkg/buildinfo"
	"github.com/matzehuels/pillbox/pkg/errors"
	"github.com/matzehuels/pillbox/pkg/pillbox"
	"github.com/matzehuels/pillbox/pkg/pillboxtest"
)

const testKey = "TESTKEY123"

var aspirin = pillboxtest.Fields{
	pillbox.TagRxString:    "Aspirin 325 MG Oral Tablet",
	pillbox.TagColor:       "C48333",
	pillbox.TagShape:       "C48348",
	pillbox.TagScore:       "2",
	pillbox.TagSize:        "10.5",
	pillbox.TagImprint:     "BAYER",
	pillbox.TagIngredients: "ASPIRIN; CAFFEINE",
	pillbox.TagHasImage:    "1",
	pillbox.TagImageID:     "ABC123",
	pillbox.TagRxCUI:       "243670",
}

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	c.getenv = envMap(env)
	var out bytes.Buffer
	c.SetOutput(&out)

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func serviceEnv(srv *pillboxtest.Server) map[string]string {
	return map[string]string{envAPIKey: testKey, envBaseURL: srv.Endpoint()}
}

func TestSearchCommandTable(t *testing.T) {
	srv := pillboxtest.NewServer()
	defer srv.Close()
	srv.RespondWithPills(aspirin)

	out, err := runCLI(t, serviceEnv(srv), "search", "--color", "blue", "--shape", "C48348", "--ingredient", "aspirin")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}

	q := srv.LastQuery()
	if q.Get("key") != testKey {
		t.Errorf("key = %q, want %q", q.Get("key"), testKey)
	}
	if q.Get("color") != "C48333" || q.Get("shape") != "C48348" {
		t.Errorf("color/shape = %q/%q, want C48333/C48348", q.Get("color"), q.Get("shape"))
	}
	if q.Get("ingredient") != "aspirin" {
		t.Errorf("ingredient = %q, want aspirin", q.Get("ingredient"))
	}

	for _, want := range []string{
		"Aspirin 325 MG Oral Tablet",
		"BLUE",
		"ROUND",
		"10.5 mm",
		"ASPIRIN, CAFFEINE",
		"http://pillbox.nlm.nih.gov/assets/small/ABC123sm.jpg",
		"rxcui 243670",
		"1 pills",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSearchCommandJSON(t *testing.T) {
	srv := pillboxtest.NewServer()
	defer srv.Close()
	srv.RespondWithPills(aspirin, pillboxtest.Fields{pillbox.TagColor: "C99999"})

	out, err := runCLI(t, serviceEnv(srv), "search", "--format", "json", "--image-size", "large", "--param", "imprint=BAYER")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if got := srv.LastQuery().Get("imprint"); got != "BAYER" {
		t.Errorf("imprint = %q, want BAYER", got)
	}

	var res resultJSON
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if res.NoRecords || res.Count != 2 || len(res.Pills) != 2 {
		t.Fatalf("result = %+v, want 2 pills", res)
	}

	p := res.Pills[0]
	if p.Color != "BLUE" || p.Shape != "ROUND" {
		t.Errorf("color/shape = %q/%q, want BLUE/ROUND", p.Color, p.Shape)
	}
	if p.Score == nil || *p.Score != 2 {
		t.Errorf("score = %v, want 2", p.Score)
	}
	if p.Size == nil || p.Size.String() != "10.5" {
		t.Errorf("size = %v, want 10.5", p.Size)
	}
	if p.Image != "http://pillbox.nlm.nih.gov/assets/large/ABC123lg.jpg" {
		t.Errorf("image = %q", p.Image)
	}
	if !p.HasImage {
		t.Error("has_image = false, want true")
	}

	unknown := res.Pills[1]
	if unknown.Color != "" {
		t.Errorf("unknown color resolved to %q", unknown.Color)
	}
	if unknown.Fields[pillbox.TagColor] != "C99999" {
		t.Errorf("raw color = %q, want C99999", unknown.Fields[pillbox.TagColor])
	}
}

func TestSearchCommandNoRecords(t *testing.T) {
	srv := pillboxtest.NewServer()
	defer srv.Close()
	srv.RespondWith(pillboxtest.NoRecordsFound)

	out, err := runCLI(t, serviceEnv(srv), "search", "--shape", "round")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if !strings.Contains(out, "No records found") {
		t.Errorf("output missing no-records notice:\n%s", out)
	}

	out, err = runCLI(t, serviceEnv(srv), "search", "--shape", "round", "-f", "json")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	var res resultJSON
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !res.NoRecords || res.Count != 0 || res.Pills == nil {
		t.Errorf("result = %+v, want no_records with empty pills", res)
	}
}

func TestSearchCommandErrors(t *testing.T) {
	srv := pillboxtest.NewServer()
	defer srv.Close()
	srv.RespondWithPills(aspirin)

	tests := []struct {
		name string
		env  map[string]string
		args []string
		code errors.Code
	}{
		{"missing key", map[string]string{envBaseURL: srv.Endpoint()}, nil, errors.ErrCodeInvalidConfig},
		{"unknown color", serviceEnv(srv), []string{"--color", "chartreuse"}, errors.ErrCodeUnrecognizedClassification},
		{"unknown image size", serviceEnv(srv), []string{"--image-size", "huge"}, errors.ErrCodeUnrecognizedImageSize},
		{"unknown format", serviceEnv(srv), []string{"--format", "xml"}, errors.ErrCodeInvalidInput},
		{"bad has-image", serviceEnv(srv), []string{"--has-image", "yes"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.env, append([]string{"search"}, tt.args...)...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
	if n := srv.Requests(); n != 0 {
		t.Errorf("service received %d requests, want 0", n)
	}
}

func TestSearchCommandServiceFailure(t *testing.T) {
	srv := pillboxtest.NewServer()
	defer srv.Close()
	srv.RespondWithStatus(500)

	_, err := runCLI(t, serviceEnv(srv), "search", "--shape", "round")
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("error = %v, want NETWORK_ERROR", err)
	}
}

func TestCodesCommand(t *testing.T) {
	out, err := runCLI(t, nil, "codes")
	if err != nil {
		t.Fatalf("codes error: %v", err)
	}
	for _, want := range []string{"Shapes", "ROUND", "C48348", "Colors", "TURQUOISE", "C48334"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	out, err = runCLI(t, nil, "codes", "colors", "--by-code")
	if err != nil {
		t.Fatalf("codes colors error: %v", err)
	}
	if strings.Contains(out, "C48348") {
		t.Error("colors table lists a shape code")
	}
	if strings.Index(out, "C48323") > strings.Index(out, "C48334") {
		t.Error("--by-code output not sorted by code")
	}

	if _, err := runCLI(t, nil, "codes", "sizes"); err == nil {
		t.Error("codes sizes: expected error")
	}
}

func TestImageCommand(t *testing.T) {
	out, err := runCLI(t, nil, "image", "ABC123")
	if err != nil {
		t.Fatalf("image error: %v", err)
	}
	for _, want := range []string{"ABC123ss.png", "ABC123sm.jpg", "ABC123md.jpg", "ABC123lg.jpg"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	out, err = runCLI(t, nil, "image", "ABC123", "--size", "medium")
	if err != nil {
		t.Fatalf("image --size error: %v", err)
	}
	if !strings.Contains(out, "http://pillbox.nlm.nih.gov/assets/medium/ABC123md.jpg") || strings.Contains(out, "ABC123lg.jpg") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := runCLI(t, nil, "image", "ABC123", "--size", "huge"); !errors.Is(err, errors.ErrCodeUnrecognizedImageSize) {
		t.Errorf("error = %v, want UNRECOGNIZED_IMAGE_SIZE", err)
	}
}

func TestConfigShowCommand(t *testing.T) {
	out, err := runCLI(t, map[string]string{envAPIKey: testKey}, "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if strings.Contains(out, testKey) {
		t.Error("config show printed the API key")
	}
	for _, want := range []string{"******Y123", pillbox.DefaultBaseURL, "environment"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, nil, "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if !strings.Contains(out, "(not set)") || !strings.Contains(out, envAPIKey) {
		t.Errorf("missing-key hint not shown:\n%s", out)
	}
}

func TestConfigPathCommand(t *testing.T) {
	out, err := runCLI(t, nil, "--config", "/etc/pillbox.toml", "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if strings.TrimSpace(out) != "/etc/pillbox.toml" {
		t.Errorf("config path = %q", out)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, nil, "--version")
	if err != nil {
		t.Fatalf("--version error: %v", err)
	}
	if !strings.Contains(out, "pillbox version "+buildinfo.Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, nil, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "pillbox") {
		t.Error("bash completion does not mention pillbox")
	}
}
