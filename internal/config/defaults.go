package config

const (
	defaultDataDir               = "~/.local/share/uxfomo"
	defaultExportDir             = "~/.local/share/uxfomo/exports"
	defaultLogDir                = "~/.local/share/uxfomo/logs"
	defaultStoreBackend          = BackendSQLite
	defaultStoreKey              = "uxfomo_profile_data"
	defaultStoreQuotaBytes       = 5 * 1024 * 1024
	defaultExportProduct         = "perfil-uxfomo"
	defaultExportFormat          = FormatAuto
	defaultFeaturedNaming        = NamingIndex
	defaultIncludeAvatarFile     = true
	defaultIncludeFeaturedImages = true
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultConfigLocation        = "~/.config/uxfomo/config.toml"
	defaultProjectConfigFileName = "uxfomo.toml"
	defaultDotEnvFileName        = ".env"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Export formats accepted by export.default_format.
const (
	FormatAuto     = "auto"
	FormatDocument = "document"
	FormatArchive  = "archive"
)

// Featured file naming schemes accepted by export.featured_naming.
const (
	NamingIndex = "index"
	NamingID    = "id"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ExportDir: defaultExportDir,
			LogDir:    defaultLogDir,
		},
		Store: Store{
			Backend:    defaultStoreBackend,
			Key:        defaultStoreKey,
			QuotaBytes: defaultStoreQuotaBytes,
		},
		Export: Export{
			Product:               defaultExportProduct,
			DefaultFormat:         defaultExportFormat,
			FeaturedNaming:        defaultFeaturedNaming,
			IncludeAvatarFile:     defaultIncludeAvatarFile,
			IncludeFeaturedImages: defaultIncludeFeaturedImages,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
