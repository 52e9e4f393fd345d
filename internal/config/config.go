// internal/config/config.go
package config

type Config struct {
	Registry   RegistryConfig    `yaml:"registry"`
	Log        LogConfig         `yaml:"log"`
	Conditions []ConditionConfig `yaml:"conditions"`
	Poll       *PollConfig       `yaml:"poll"`
	Publish    *PublishConfig    `yaml:"publish"`
}

// ---- REGISTRY ----

type RegistryConfig struct {
	Locking string `yaml:"locking"` // none | mutex
	Strict  bool   `yaml:"strict"`  // trap on invalid calls (debug builds)
}

const (
	LockingNone  = "none"
	LockingMutex = "mutex"
)

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"` // loggo level name for <root>
}

// ---- CONDITIONS ----

// ConditionConfig declares one named condition.
// When the list is empty the built-in catalog is used.
type ConditionConfig struct {
	Name  string `yaml:"name"`
	Class string `yaml:"class"`
	Bank  uint16 `yaml:"bank"`
	Bit   uint16 `yaml:"bit"`
}

// ---- FIELDBUS ----

type BusConfig struct {
	Endpoint  string       `yaml:"endpoint"`  // host:port for tcp, device path for rtu
	Transport string       `yaml:"transport"` // tcp | rtu
	UnitID    uint8        `yaml:"unit_id"`
	TimeoutMs int          `yaml:"timeout_ms"`
	Serial    SerialConfig `yaml:"serial"`
}

const (
	TransportTCP = "tcp"
	TransportRTU = "rtu"
)

type SerialConfig struct {
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"` // N | E | O
	StopBits int    `yaml:"stop_bits"`
}

// ---- POLL (condition feed) ----

type PollConfig struct {
	BusConfig  `yaml:",inline"`
	IntervalMs int           `yaml:"interval_ms"`
	CommLoss   string        `yaml:"comm_loss"` // condition raised while reads fail (optional)
	Watches    []WatchConfig `yaml:"watches"`
}

// WatchConfig binds one remote point to a condition.
type WatchConfig struct {
	Condition string `yaml:"condition"`
	FC        uint8  `yaml:"fc"`
	Address   uint16 `yaml:"address"`
	Bit       uint8  `yaml:"bit"` // register bit for FC 3/4
	Invert    bool   `yaml:"invert"`
}

// ---- PUBLISH (register block writer) ----

type PublishConfig struct {
	BusConfig  `yaml:",inline"`
	Address    uint16 `yaml:"address"`
	IntervalMs int    `yaml:"interval_ms"`
}
