package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pillbox/pkg/errors"
	"github.com/matzehuels/pillbox/pkg/pillbox"
)

// Output formats for search results.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// searchOpts holds the command-line flags for the search command.
type searchOpts struct {
	color      string
	shape      string
	ingredient string
	score      string
	size       string
	prodCode   string
	hasImage   string
	extra      map[string]string
	imageSize  string
	format     string
	strict     bool
}

// params converts flags into search parameters. Color and shape accept
// either a name or an SPL code.
func (o *searchOpts) params() pillbox.SearchParams {
	return pillbox.SearchParams{
		Color:       pillbox.ParseClassification(pillbox.Colors, o.color),
		Shape:       pillbox.ParseClassification(pillbox.Shapes, o.shape),
		Ingredient:  o.ingredient,
		Score:       o.score,
		Size:        o.size,
		ProductCode: o.prodCode,
		HasImage:    o.hasImage,
		Extra:       o.extra,
	}
}

func (o *searchOpts) validate() error {
	if o.format != formatTable && o.format != formatJSON {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (use %s or %s)", o.format, formatTable, formatJSON)
	}
	if _, err := pillbox.ParseImageSize(o.imageSize); err != nil {
		return err
	}
	if o.hasImage != "" && o.hasImage != "0" && o.hasImage != "1" {
		return errors.New(errors.ErrCodeInvalidInput, "--has-image must be 0 or 1")
	}
	return nil
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	opts := searchOpts{imageSize: string(pillbox.DefaultImageSize), format: formatTable}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for pills by physical characteristics",
		Long: `Search the Pillbox service for pills matching the given characteristics.

Color and shape accept a name (blue, round) or an SPL code (C48333, C48348).
Run "pillbox codes" to list them.`,
		Example: `  pillbox search --color blue --shape round
  pillbox search --ingredient ibuprofen --size 10 --format json
  pillbox search --shape C48336 --param imprint=M367`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.color, "color", "", "pill color name or SPL code")
	f.StringVar(&opts.shape, "shape", "", "pill shape name or SPL code")
	f.StringVar(&opts.ingredient, "ingredient", "", "active ingredient (one per search)")
	f.StringVar(&opts.score, "score", "", "SPL score value")
	f.StringVar(&opts.size, "size", "", "size in whole millimetres (matches +/- 2 mm)")
	f.StringVar(&opts.prodCode, "prodcode", "", "FDA 9-digit product code in dashed format")
	f.StringVar(&opts.hasImage, "has-image", "", "1 for pills with an image, 0 for pills without")
	f.StringToStringVar(&opts.extra, "param", nil, "additional service parameter as key=value (repeatable)")
	f.StringVar(&opts.imageSize, "image-size", opts.imageSize, "image size for URLs: super_small, small, medium, large")
	f.StringVarP(&opts.format, "format", "f", opts.format, "output format: table or json")
	f.BoolVar(&opts.strict, "strict", false, "fail when a result carries an unknown code or bad number")

	_ = cmd.RegisterFlagCompletionFunc("color", completeNames(pillbox.Colors))
	_ = cmd.RegisterFlagCompletionFunc("shape", completeNames(pillbox.Shapes))
	_ = cmd.RegisterFlagCompletionFunc("image-size", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return imageSizeNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runSearch(cmd *cobra.Command, opts *searchOpts) error {
	if err := opts.validate(); err != nil {
		return err
	}
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if opts.strict {
		cfg.Strict = true
	}
	client, err := c.newClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	prog := newProgress(c.Logger)
	var spinner *Spinner
	if opts.format == formatTable {
		spinner = newSpinner(ctx, c.errOut, "Searching Pillbox...")
		spinner.Start()
	}

	res, err := client.Search(ctx, opts.params())
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Search failed")
		}
		return fmt.Errorf("search: %w", err)
	}
	if spinner != nil {
		spinner.Stop()
	}
	prog.done(fmt.Sprintf("Found %d pills", res.Len()))

	size := pillbox.ImageSize(opts.imageSize)
	if opts.format == formatJSON {
		return writeJSON(c.out, newResultJSON(res, size))
	}
	c.printResult(res, size)
	return nil
}

// =============================================================================
// Table Output
// =============================================================================

func (c *CLI) printResult(res *pillbox.Result, size pillbox.ImageSize) {
	w := c.out
	if res.NoRecords || res.Len() == 0 {
		printInfo(w, "No records found")
		printNextStep(w, "List valid colors and shapes", "pillbox codes")
		return
	}

	for i, p := range res.Pills {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printPill(w, i+1, p, size)
	}
	fmt.Fprintln(w)
	printSuccess(w, "%d pills", res.Len())
}

func printPill(w io.Writer, n int, p *pillbox.Pill, size pillbox.ImageSize) {
	title := p.Description()
	if title == "" {
		title = "(no description)"
	}
	fmt.Fprintln(w, StyleNumber.Render(strconv.Itoa(n)+".")+" "+StyleTitle.Render(title))

	printKeyValue(w, "imprint", p.Imprint())
	printKeyValue(w, "color", describeCode(p.Color, p.ColorCode()))
	printKeyValue(w, "shape", describeCode(p.Shape, p.ShapeCode()))
	if d, err := p.Size(); err == nil {
		printKeyValue(w, "size", d.String()+" mm")
	}
	if s, err := p.Score(); err == nil {
		printKeyValue(w, "score", strconv.Itoa(s))
	}
	printKeyValue(w, "ingredients", strings.Join(p.Ingredients(), ", "))
	if url := pillbox.ImageURL(p.ImageID(), size); url != "" {
		printLink(w, "image", url)
	}
	printStats(w, labeled("rxcui", p.RxCUI()), labeled("rxtty", p.RxTTY()),
		labeled("ndc", p.ProductCode()), labeled("setid", p.SetID()))
}

// describeCode renders a classification name, falling back to the raw code
// when the table does not know it.
func describeCode(name func() (string, error), code string) string {
	if code == "" {
		return ""
	}
	if n, err := name(); err == nil {
		return n
	}
	return StyleWarning.Render(code + " (unknown)")
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + " " + value
}

// =============================================================================
// JSON Output
// =============================================================================

type resultJSON struct {
	NoRecords bool       `json:"no_records"`
	Count     int        `json:"count"`
	Pills     []pillJSON `json:"pills"`
}

type pillJSON struct {
	Description string            `json:"description,omitempty"`
	Imprint     string            `json:"imprint,omitempty"`
	Color       string            `json:"color,omitempty"`
	Shape       string            `json:"shape,omitempty"`
	Score       *int              `json:"score,omitempty"`
	Size        *decimal.Decimal  `json:"size,omitempty"`
	Ingredients []string          `json:"ingredients"`
	HasImage    bool              `json:"has_image"`
	Image       string            `json:"image,omitempty"`
	ProductCode string            `json:"product_code,omitempty"`
	SetID       string            `json:"set_id,omitempty"`
	SPLID       string            `json:"spl_id,omitempty"`
	RxCUI       string            `json:"rxcui,omitempty"`
	RxTTY       string            `json:"rxtty,omitempty"`
	Fields      map[string]string `json:"fields"`
}

func newResultJSON(res *pillbox.Result, size pillbox.ImageSize) resultJSON {
	out := resultJSON{NoRecords: res.NoRecords, Count: res.Len(), Pills: []pillJSON{}}
	for _, p := range res.Pills {
		out.Pills = append(out.Pills, newPillJSON(p, size))
	}
	return out
}

func newPillJSON(p *pillbox.Pill, size pillbox.ImageSize) pillJSON {
	j := pillJSON{
		Description: p.Description(),
		Imprint:     p.Imprint(),
		Ingredients: p.Ingredients(),
		HasImage:    p.HasImage(),
		Image:       pillbox.ImageURL(p.ImageID(), size),
		ProductCode: p.ProductCode(),
		SetID:       p.SetID(),
		SPLID:       p.SPLID(),
		RxCUI:       p.RxCUI(),
		RxTTY:       p.RxTTY(),
		Fields:      p.Fields(),
	}
	if v, err := p.Color(); err == nil {
		j.Color = v
	}
	if v, err := p.Shape(); err == nil {
		j.Shape = v
	}
	if v, err := p.Score(); err == nil {
		j.Score = &v
	}
	if v, err := p.Size(); err == nil {
		j.Size = &v
	}
	return j
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// =============================================================================
// Completion
// =============================================================================

func completeNames(t *pillbox.CodeTable) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := t.Names()
		for i, n := range names {
			names[i] = strings.ToLower(n)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func imageSizeNames() []string {
	var names []string
	for _, s := range pillbox.ImageSizes() {
		names = append(names, string(s))
	}
	return names
}
