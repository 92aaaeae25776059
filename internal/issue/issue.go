// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Catalog entries, one per failure kind.
const (
	UsageId Id = iota + 1
	MissingDependencyId
	AmbiguousDependencyId
	PluginLoadFailedId
	PluginShapeMismatchId
	SchemaMismatchId
	PluginOperationFailedId
	ConfigLoadFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the Markdown body of an Issue.
	MarkdownMsg string

	// HttpLink is an external reference shown under "See also".
	HttpLink string

	// Issue is a catalog entry with Markdown guidance for one failure kind.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown with the given glamour style
// ("dark", "light", "notty", or a path to a style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range append(slices.Clone(i.docLinks), i.extLinks...) {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	usageIssue = &Issue{
		id: UsageId,
		mdMsg: `
# Invalid invocation

supplyloader expects one mode flag followed by its arguments:

~~~
supplyloader -init    <pluginIdentifier> <connectionString>
supplyloader -xunit   <pluginIdentifier> <connectionString>
supplyloader -samples <pluginIdentifier> <connectionString> <collection> <entity[:type],...> <count>
~~~

- Mode flags are case-insensitive (` + "`-SAMPLES`" + ` works).
- ` + "`count`" + ` must be a non-negative integer.
- Type hints are ` + "`string`, `int`, `bool`, `double`, `date`" + `.`,
	}

	missingDependencyIssue = &Issue{
		id: MissingDependencyId,
		mdMsg: `
# Dependency not found

A unit required by the plugin could not be found under the search root.

## Things you can try
- Copy the missing unit next to the plugin, or anywhere below the search root.
- Point the resolver at the right tree:
~~~
$ SUPPLYLOADER_RESOLVER_SEARCH_ROOT=/opt/supply supplyloader ...
~~~
- Check the ` + "`requires`" + ` list in the plugin's ` + "`.toml`" + ` manifest for typos.`,
		extLinks: []HttpLink{"https://pkg.go.dev/plugin"},
	}

	ambiguousDependencyIssue = &Issue{
		id: AmbiguousDependencyId,
		mdMsg: `
# Dependency is ambiguous

Strict resolution found more than one file with the same name.

## Things you can try
- Remove the stale copies listed above.
- Narrow the search root so only one copy is reachable.
- Disable strict mode to take the first match in lexicographic order:
~~~
$ SUPPLYLOADER_RESOLVER_STRICT=false supplyloader ...
~~~`,
	}

	pluginLoadFailedIssue = &Issue{
		id: PluginLoadFailedId,
		mdMsg: `
# Plugin could not be loaded

The collector ` + "`<Id>`" + ` and loader ` + "`<Id>Loader`" + ` must either be built in or
exist as ` + "`<name>.so`" + ` in the plugin directory, exporting a symbol with the same name.

## Things you can try
- Check the spelling of the plugin identifier.
- Built-in plugins: ` + "`SqliteSupplyCollector`, `PostgresSupplyCollector`, `MySqlSupplyCollector`, `MongoDbSupplyCollector`" + `.
- Rebuild the plugin with the same Go toolchain as supplyloader:
~~~
$ go build -buildmode=plugin -o MyCollector.so ./mycollector
~~~`,
		extLinks: []HttpLink{"https://pkg.go.dev/plugin#hdr-Warnings"},
	}

	pluginShapeMismatchIssue = &Issue{
		id: PluginShapeMismatchId,
		mdMsg: `
# Plugin does not implement its contract

A collector needs ` + "`GetSchema`" + ` and ` + "`CollectSample`" + `; a loader needs
` + "`InitializeDatabase`, `LoadUnitTestData`" + ` and ` + "`LoadSamples`" + `, with the
signatures from ` + "`supplyloader/pkg/datamodel`" + `.

## Things you can try
- Add a compile-time check to the plugin:
~~~go
var _ datamodel.Collector = (*MyCollector)(nil)
~~~
- Rebuild against the current ` + "`datamodel`" + ` package.`,
	}

	schemaMismatchIssue = &Issue{
		id: SchemaMismatchId,
		mdMsg: `
# Collection exists with a different shape

The collection is already present, so samples can only target its existing
entities. Type hints are ignored for existing collections.

## Things you can try
- Check the entity names against the live schema.
- Load into a new collection name to have the entities created from your hints.`,
	}

	pluginOperationFailedIssue = &Issue{
		id: PluginOperationFailedId,
		mdMsg: `
# The plugin reported an error

The plugin pair was bound, but the data store rejected the operation.

## Things you can try
- Verify the connection string and that the data store is reachable.
- Re-run with debug logging for details:
~~~
$ SUPPLYLOADER_LOG_LEVEL=debug supplyloader ...
~~~
- Raise ` + "`timeouts.operation`" + ` for slow data stores.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

Defaults were used instead.

## Things you can try
- Validate the file with the cue tool:
~~~
$ cue vet supplyloader.cue
~~~
- Check ` + "`SUPPLYLOADER_*`" + ` environment variables for typos.`,
	}

	issues = map[Id]*Issue{
		usageIssue.id:                 usageIssue,
		missingDependencyIssue.id:     missingDependencyIssue,
		ambiguousDependencyIssue.id:   ambiguousDependencyIssue,
		pluginLoadFailedIssue.id:      pluginLoadFailedIssue,
		pluginShapeMismatchIssue.id:   pluginShapeMismatchIssue,
		schemaMismatchIssue.id:        schemaMismatchIssue,
		pluginOperationFailedIssue.id: pluginOperationFailedIssue,
		configLoadFailedIssue.id:      configLoadFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
