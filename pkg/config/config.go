package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var configDir string
var configFilePath string

// Settings is a typed snapshot of the configuration used to build the application.
type Settings struct {
	BaseURL        string
	Timeout        time.Duration
	PageSize       int
	CourseGroup    int
	Ordering       string
	StorageBackend string
	StoragePath    string
	DemoCounts     bool
	DemoSeed       uint64
	OutputFormat   string
	LogLevel       string
	LogFile        string
}

// getConfigDir returns platform-specific config directory
func getConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		// Windows: %LOCALAPPDATA%\blogfront
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = home
		}
		return filepath.Join(appData, "blogfront"), nil
	}

	// Unix-like (macOS, Linux): ~/.config/blogfront
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "blogfront"), nil
}

// getSystemConfigPaths returns platform-specific system config paths
func getSystemConfigPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join(os.Getenv("ProgramFiles"), "blogfront", "config.toml")}
	}

	return []string{
		"/etc/blogfront/config.toml",
		"/usr/local/etc/blogfront/config.toml",
	}
}

// Init initializes the configuration
func Init(configPath string) error {
	var err error
	if configPath != "" {
		configDir = filepath.Dir(configPath)
		configFilePath = configPath
	} else {
		configDir, err = getConfigDir()
		if err != nil {
			return err
		}
		configFilePath = filepath.Join(configDir, "config.toml")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	// A missing .env is the normal case
	_ = godotenv.Load()

	viper.Reset()
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("BLOGFRONT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// System config first, user config overrides it
	for _, sysConfigPath := range getSystemConfigPaths() {
		if _, err := os.Stat(sysConfigPath); err == nil {
			viper.SetConfigFile(sysConfigPath)
			_ = viper.ReadInConfig()
			break
		}
	}

	viper.SetConfigFile(configFilePath)
	_ = viper.MergeInConfig()

	return nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "https://studapi.teachmeskills.by")
	viper.SetDefault("api.timeout", 30)

	viper.SetDefault("posts.page_size", 12)
	viper.SetDefault("posts.course_group", 18)
	viper.SetDefault("posts.ordering", "-date")

	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.path", "")

	viper.SetDefault("demo.seed_counts", false)
	viper.SetDefault("demo.seed", 0)

	viper.SetDefault("output.format", "text")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", filepath.Join(configDir, "blogfront.log"))
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetString returns a string configuration value
func GetString(key string) string {
	value := viper.GetString(key)
	if key == "storage.path" || key == "log.file" {
		return expandPath(value)
	}
	return value
}

// GetInt returns an int configuration value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool configuration value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set overrides a value for the current process only
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

// SetString sets a string configuration value and writes the user config file
func SetString(key string, value string) error {
	viper.Set(key, value)
	return viper.WriteConfigAs(configFilePath)
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// Load returns the current configuration as a Settings value.
func Load() Settings {
	// Unknown backends pass through; opening storage rejects them.
	backend := strings.ToLower(strings.TrimSpace(GetString("storage.backend")))
	if backend == "" {
		backend = "file"
	}

	storagePath := GetString("storage.path")
	if storagePath == "" {
		name := "state.json"
		if backend == "sqlite" {
			name = "state.db"
		}
		storagePath = filepath.Join(configDir, name)
	}

	pageSize := GetInt("posts.page_size")
	if pageSize <= 0 {
		pageSize = 12
	}

	timeout := GetInt("api.timeout")
	if timeout <= 0 {
		timeout = 30
	}

	seed := GetInt("demo.seed")
	if seed < 0 {
		seed = 0
	}

	return Settings{
		BaseURL:        strings.TrimRight(GetString("api.base_url"), "/"),
		Timeout:        time.Duration(timeout) * time.Second,
		PageSize:       pageSize,
		CourseGroup:    GetInt("posts.course_group"),
		Ordering:       GetString("posts.ordering"),
		StorageBackend: backend,
		StoragePath:    storagePath,
		DemoCounts:     GetBool("demo.seed_counts"),
		DemoSeed:       uint64(seed),
		OutputFormat:   GetString("output.format"),
		LogLevel:       GetString("log.level"),
		LogFile:        GetString("log.file"),
	}
}
