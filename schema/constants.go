package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// CacheBackend represents the database backend for response caching.
	CacheBackend string

	// SplitStrategy represents the cross-validation partitioning strategy.
	SplitStrategy string

	// ModelKind represents the regression learner used for evaluation.
	ModelKind string

	// AdminLevel represents the administrative granularity of an estimate.
	AdminLevel string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     CacheBackend = "sqlite" // default
	MySQLBackend      CacheBackend = "mysql"
	PostgreSQLBackend CacheBackend = "postgresql"
	NoneBackend       CacheBackend = "none"
)

// All split strategies supported.
const (
	KFoldSplit SplitStrategy = "kfold" // default
	GroupSplit SplitStrategy = "group"
)

// All model kinds supported.
const (
	OLSModel    ModelKind = "ols" // default
	ForestModel ModelKind = "forest"
)

// All admin levels supported.
const (
	NationalLevel    AdminLevel = "national"
	SubnationalLevel AdminLevel = "subnational" // GADM1 regions
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[CacheBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSplitStrategies lists all valid split strategies.
var ValidSplitStrategies = map[SplitStrategy]struct{}{
	KFoldSplit: {},
	GroupSplit: {},
}

// ValidModelKinds lists all valid model kinds.
var ValidModelKinds = map[ModelKind]struct{}{
	OLSModel:    {},
	ForestModel: {},
}
