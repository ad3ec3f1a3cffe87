package cfg

type Cfg struct {
	// Application configuration
	DataDir           string
	ProfilePath       string
	Port              string
	WorkerCount       int
	SchedulerInterval int
	RunInterval       int
	APIAccessKey      string

	// Upstream credentials
	FoloCookie   string
	GeminiAPIKey string
	OpenAIAPIKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
