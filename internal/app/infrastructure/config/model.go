package config

// Config is the process configuration, read once at startup from config.json.
type Config struct {
	App      App      `json:"app"`
	Postgres Postgres `json:"postgres"`
	HTTP     HTTP     `json:"http"`
}

type App struct {
	// Username is the bot account; OAuth its chat token.
	Username string `json:"username"`
	OAuth    string `json:"oauth"`

	// Channel is the streamer's channel the bot joins and serves.
	Channel string `json:"channel"`

	// OperatorChannel is exempt from the outbound send delay.
	OperatorChannel string `json:"operator_channel"`

	// Transport selects the IRC connection: "tcp" (TLS socket) or "ws".
	Transport string `json:"transport"`

	CommandPrefix string `json:"command_prefix"`
	PointsName    string `json:"points_name"`

	// SendDelaySeconds is the fixed pause after each outbound chat line.
	SendDelaySeconds int `json:"send_delay_seconds"`

	StateDir string `json:"state_dir"`
	DataDir  string `json:"data_dir"`

	LogLevel string `json:"log_level"`
	GinMode  string `json:"gin_mode"`
}

type Postgres struct {
	DSN string `json:"dsn"`
}

type HTTP struct {
	Addr      string `json:"addr"`
	AuthToken string `json:"auth_token"`
}
