package output

import (
	"fmt"
	"io"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/pkgsync/pkg/reconcile"
)

// maxListed caps the per-section item lists in markdown reports.
const maxListed = 50

// ChangesData converts a change-set summary to table format, one row per
// section.
func ChangesData(cs *reconcile.Changeset) Data {
	s := cs.Summary
	return Data{
		Headers: []string{"Section", "Added", "Updated", "Removed"},
		Rows: [][]string{
			{"Packages", strconv.Itoa(s.PackagesAdded), strconv.Itoa(s.PackagesUpdated), "-"},
			{"URLs", strconv.Itoa(s.URLsAdded), "-", "-"},
			{"Links", strconv.Itoa(s.LinksAdded), strconv.Itoa(s.LinksUpdated), "-"},
			{"Dependencies", strconv.Itoa(s.DependenciesAdded), "-", strconv.Itoa(s.DependenciesRemoved)},
		},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}

// StatsData converts run statistics to a key-value table.
func StatsData(r *reconcile.Result) Data {
	st := r.Metadata.Stats
	return Data{
		Headers: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Source", r.Source},
			{"Run", r.Metadata.RunID},
			{"Dry run", strconv.FormatBool(r.Metadata.DryRun)},
			{"Duration", r.Metadata.Duration.String()},
			{"Packages processed", strconv.Itoa(st.PackagesProcessed)},
			{"Packages created", strconv.Itoa(st.PackagesCreated)},
			{"Packages updated", strconv.Itoa(st.PackagesUpdated)},
			{"Packages skipped", strconv.Itoa(st.PackagesSkipped)},
			{"Packages not cached", strconv.Itoa(st.PackagesUncached)},
			{"Unresolved dependencies", strconv.Itoa(st.DependenciesUnresolved)},
		},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// ResultData converts a result to the tables printed by the table format.
func ResultData(r *reconcile.Result) []Data {
	tables := []Data{StatsData(r)}
	if r.Changeset != nil {
		tables = append(tables, ChangesData(r.Changeset))
	}
	return tables
}

// FormatResult writes a result in the given format. Table output renders
// the statistics and change tables; structured formats emit the result.
func FormatResult(w io.Writer, format Format, r *reconcile.Result) error {
	switch format {
	case FormatTable, "":
		return NewFormatter(FormatTable).Format(w, ResultData(r))
	default:
		return NewFormatter(format).Format(w, r)
	}
}

// MarkdownFormatter outputs a markdown document.
type MarkdownFormatter struct{}

// Format implements the Formatter interface for markdown output.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	doc := md.NewMarkdown(w)
	switch v := data.(type) {
	case *reconcile.Result:
		writeResult(doc, v)
	case Data:
		doc.Table(tableSet(v))
	case []Data:
		for _, d := range v {
			doc.Table(tableSet(d)).LF()
		}
	default:
		tableData := toTableData(data)
		if tableData == nil {
			return (&JSONFormatter{Indent: "  "}).Format(w, data)
		}
		doc.Table(tableSet(*tableData))
	}
	return doc.Build()
}

func tableSet(d Data) md.TableSet {
	return md.TableSet{Header: d.Headers, Rows: d.Rows}
}

func writeResult(doc *md.Markdown, r *reconcile.Result) {
	doc.H1(fmt.Sprintf("Reconciliation report: %s", r.Source)).
		PlainText(r.Summary()).
		LF()

	doc.H2("Statistics").Table(tableSet(StatsData(r))).LF()

	cs := r.Changeset
	if cs == nil || !cs.HasChanges() {
		return
	}
	doc.H2("Changes").Table(tableSet(ChangesData(cs))).LF()

	if len(cs.Packages.Added) > 0 {
		items := make([]string, 0, len(cs.Packages.Added))
		for _, p := range cs.Packages.Added {
			items = append(items, fmt.Sprintf("%s (%s)", p.ImportID, p.DerivedID))
		}
		doc.H2("New packages").BulletList(capped(items)...).LF()
	}
	if len(cs.Packages.Updated) > 0 {
		items := make([]string, 0, len(cs.Packages.Updated))
		for _, u := range cs.Packages.Updated {
			items = append(items, u.ID.String())
		}
		doc.H2("Updated readmes").BulletList(capped(items)...).LF()
	}
	if len(cs.URLs.Added) > 0 {
		items := make([]string, 0, len(cs.URLs.Added))
		for _, u := range cs.URLs.Added {
			items = append(items, u.URL)
		}
		doc.H2("New URLs").BulletList(capped(items)...).LF()
	}
}

func capped(items []string) []string {
	if len(items) <= maxListed {
		return items
	}
	out := append([]string{}, items[:maxListed]...)
	return append(out, fmt.Sprintf("... and %d more", len(items)-maxListed))
}
