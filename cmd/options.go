package cmd

// Options holds the shared command-line options for the ghusers CLI.
type Options struct {
	Format    string // Output format (table, json)
	PageSize  int    // Users per page; 0 means use the configured value
	Pages     int    // Pages to fetch in one non-interactive run
	Search    string // Login substring filter
	DBPath    string // Local store location override
	Token     string // GitHub token override
	Verbosity int    // -v count
	Offline   bool   // Serve the cached list without fetching
	Details   bool   // Also warm the detail cache after fetching
	Refresh   bool   // Bypass the detail cache read
	Workers   int    // Concurrent detail fetches when warming
}
