package config

import (
	"flag"
	"time"
)

// options mirrors the command-line surface; only flags given explicitly
// override the lower layers.
type options struct {
	configPath  string
	checkAuthor string
	authorList  string
	authorDir   string
	logLevel    string
	userToken   string
	apiToken    string
	extractor   string
	selector    string
	interval    time.Duration
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Path to a YAML config file (env "+configPathEnv+")")

	usage := "Custom author check - [Default: all]"
	fs.StringVar(&o.checkAuthor, "a", "", usage)
	fs.StringVar(&o.checkAuthor, "author", "", usage)

	usage = "Custom filename for the csv file containing authors and urls - [Default: authors.csv]"
	fs.StringVar(&o.authorList, "aL", "", usage)
	fs.StringVar(&o.authorList, "author-list", "", usage)

	fs.StringVar(&o.authorDir, "author-file-folder", "", "Custom authors file location - [Default: authors]")
	fs.StringVar(&o.logLevel, "log-level", "", "Set the level of logs to show (Options: DEBUG, INFO, WARNING, ERROR, CRITICAL) - [Default: INFO]")

	usage = "Pushover user token (required, env " + pushoverUserEnv + ")"
	fs.StringVar(&o.userToken, "Pu", "", usage)
	fs.StringVar(&o.userToken, "pushover-user-token", "", usage)

	usage = "Pushover API token (required, env " + pushoverTokenEnv + ")"
	fs.StringVar(&o.apiToken, "Pa", "", usage)
	fs.StringVar(&o.apiToken, "pushover-api-token", "", usage)

	fs.StringVar(&o.extractor, "extractor", "", "Title extractor: amazon or css - [Default: amazon]")
	fs.StringVar(&o.selector, "selector", "", "CSS selector used by the css extractor")
	fs.DurationVar(&o.interval, "interval", 0, "Repeat the check at this interval until interrupted (0 runs once)")
}

func (o *options) apply(cfg *Config, fs *flag.FlagSet) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["a"] || set["author"] {
		cfg.Authors.Check = o.checkAuthor
	}
	if set["aL"] || set["author-list"] {
		cfg.Authors.ListPath = o.authorList
	}
	if set["author-file-folder"] {
		cfg.Authors.FilesDir = o.authorDir
	}
	if set["log-level"] {
		cfg.Logging.Level = o.logLevel
	}
	if set["Pu"] || set["pushover-user-token"] {
		cfg.Notifications.Pushover.UserToken = o.userToken
	}
	if set["Pa"] || set["pushover-api-token"] {
		cfg.Notifications.Pushover.APIToken = o.apiToken
	}
	if set["extractor"] {
		cfg.Extractor.Name = o.extractor
	}
	if set["selector"] {
		cfg.Extractor.Selector = o.selector
	}
	if set["interval"] {
		cfg.Scheduler.Interval = o.interval
	}
}
