// Package config handles configuration persistence for the cslogix tag-gateway tools.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigListenerID is a unique identifier for a config change listener.
type ConfigListenerID string

// Config holds the complete application configuration.
type Config struct {
	Namespace string          `yaml:"namespace"` // instance namespace for topic/key isolation
	PLCs      []PLCConfig     `yaml:"plcs"`
	Web       WebConfig       `yaml:"web"`
	MQTT      []MQTTConfig    `yaml:"mqtt"`
	Valkey    []ValkeyConfig  `yaml:"valkey,omitempty"`
	Kafka     []KafkaConfig   `yaml:"kafka,omitempty"`
	TagPacks  []TagPackConfig `yaml:"tag_packs,omitempty"`
	PollRate  time.Duration   `yaml:"poll_rate"`
	UI        UIConfig        `yaml:"ui,omitempty"`

	// Data mutex protects all config fields against concurrent access.
	// Callers that modify config should Lock(), modify, then call UnlockAndSave().
	// Save() acquires the lock internally for callers that don't hold it.
	dataMu sync.Mutex `yaml:"-"`

	// Change listeners (not serialized)
	changeListeners map[ConfigListenerID]func() `yaml:"-"`
	listenersMu     sync.RWMutex                `yaml:"-"`
	listenerCounter uint64                      `yaml:"-"`
}

// TagPackConfig holds configuration for a named group of tags (a "pack").
// Only the pack helpers on Config read it; no publisher in this module
// builds or sends packs from it.
type TagPackConfig struct {
	Name          string          `yaml:"name"`
	Enabled       bool            `yaml:"enabled"`
	MQTTEnabled   bool            `yaml:"mqtt_enabled"`
	KafkaEnabled  bool            `yaml:"kafka_enabled"`
	ValkeyEnabled bool            `yaml:"valkey_enabled"`
	Members       []TagPackMember `yaml:"members"`
}

// TagPackMember represents a single tag in a TagPack.
type TagPackMember struct {
	PLC           string `yaml:"plc"`            // PLC name
	Tag           string `yaml:"tag"`            // Tag name (uses alias if set)
	IgnoreChanges bool   `yaml:"ignore_changes"` // If true, changes to this tag don't trigger publish
}

// UIConfig stores user interface preferences.
type UIConfig struct {
	Theme     string `yaml:"theme,omitempty"`      // Theme name: default, retro, mono, amber, highcontrast
	ASCIIMode bool   `yaml:"ascii_mode,omitempty"` // Use ASCII characters for borders (for terminals without Unicode)
}

// PLCConfig stores connection parameters for a single Logix-family controller.
// DiscoverTags, PollRate, Timeout, ConnectionSize and StringEncoding are
// stored and saved, but cslogixd does not apply them: every PLC is polled at
// the global PollRate with the driver's default timeout, and the connection
// size is always negotiated as 4002 then 504.
type PLCConfig struct {
	Name     string         `yaml:"name"`
	Address  string         `yaml:"address"` // host or host:port; default port 44818
	Slot     byte           `yaml:"slot"`    // backplane slot for ControlLogix/CompactLogix chassis
	Micro800 bool           `yaml:"micro800,omitempty"` // true for Micro800 series (no backplane route)
	Route    []byte         `yaml:"route,omitempty"`    // explicit route path, overrides Slot when set

	Enabled            bool          `yaml:"enabled"`
	DiscoverTags       *bool         `yaml:"discover_tags,omitempty"`        // default true
	HealthCheckEnabled *bool         `yaml:"health_check_enabled,omitempty"` // default true
	PollRate           time.Duration `yaml:"poll_rate,omitempty"`            // per-PLC poll rate (0 = use global)
	Timeout            time.Duration `yaml:"timeout,omitempty"`              // connection/operation timeout (0 = driver default)

	ConnectionSize  uint16 `yaml:"connection_size,omitempty"`  // Forward Open size in bytes (0 = negotiate 4002 then 504)
	StringEncoding  string `yaml:"string_encoding,omitempty"`   // "ascii" (default) or "utf8"

	Tags []TagSelection `yaml:"tags,omitempty"`
}

// GetDiscoverTags returns whether tag discovery is enabled, defaulting to true.
func (p *PLCConfig) GetDiscoverTags() bool {
	if p.DiscoverTags == nil {
		return true
	}
	return *p.DiscoverTags
}

// IsHealthCheckEnabled returns whether health check publishing is enabled (defaults to true).
func (p *PLCConfig) IsHealthCheckEnabled() bool {
	if p.HealthCheckEnabled == nil {
		return true
	}
	return *p.HealthCheckEnabled
}

// TagSelection represents a tag selected for republishing.
type TagSelection struct {
	Name          string   `yaml:"name"`
	Alias         string   `yaml:"alias,omitempty"`
	DataType      string   `yaml:"data_type,omitempty"` // Manual type: BOOL, INT, DINT, REAL, etc.
	Enabled       bool     `yaml:"enabled"`
	Writable      bool     `yaml:"writable,omitempty"`
	IgnoreChanges []string `yaml:"ignore_changes,omitempty"` // UDT member names to ignore for change detection
	// Service inhibit flags - when true, tag is NOT published to that service
	NoREST   bool `yaml:"no_rest,omitempty"`
	NoMQTT   bool `yaml:"no_mqtt,omitempty"`
	NoKafka  bool `yaml:"no_kafka,omitempty"`
	NoValkey bool `yaml:"no_valkey,omitempty"`
}

// PublishesToAny returns true if the tag publishes to at least one service.
func (t *TagSelection) PublishesToAny() bool {
	return !t.NoREST || !t.NoMQTT || !t.NoKafka || !t.NoValkey
}

// GetEnabledServices returns a list of service names this tag publishes to.
func (t *TagSelection) GetEnabledServices() []string {
	var services []string
	if !t.NoREST {
		services = append(services, "REST")
	}
	if !t.NoMQTT {
		services = append(services, "MQTT")
	}
	if !t.NoKafka {
		services = append(services, "Kafka")
	}
	if !t.NoValkey {
		services = append(services, "Valkey")
	}
	return services
}

// ShouldIgnoreMember returns true if the given member name is in the ignore list.
func (t *TagSelection) ShouldIgnoreMember(memberName string) bool {
	for _, ignored := range t.IgnoreChanges {
		if ignored == memberName {
			return true
		}
	}
	return false
}

// AddIgnoreMember adds a member name to the ignore list if not already present.
func (t *TagSelection) AddIgnoreMember(memberName string) {
	if !t.ShouldIgnoreMember(memberName) {
		t.IgnoreChanges = append(t.IgnoreChanges, memberName)
	}
}

// RemoveIgnoreMember removes a member name from the ignore list.
func (t *TagSelection) RemoveIgnoreMember(memberName string) {
	for i, ignored := range t.IgnoreChanges {
		if ignored == memberName {
			t.IgnoreChanges = append(t.IgnoreChanges[:i], t.IgnoreChanges[i+1:]...)
			return
		}
	}
}

// WebConfig holds unified web server configuration.
type WebConfig struct {
	Enabled bool         `yaml:"enabled"`
	Host    string       `yaml:"host"`
	Port    int          `yaml:"port"`
	API     WebAPIConfig `yaml:"api"`
	UI      WebUIConfig  `yaml:"ui"`
}

// WebAPIConfig holds REST API settings.
type WebAPIConfig struct {
	Enabled bool `yaml:"enabled"`
}

// WebUIConfig holds browser UI settings.
type WebUIConfig struct {
	Enabled       bool      `yaml:"enabled"`
	SessionSecret string    `yaml:"session_secret,omitempty"`
	Users         []WebUser `yaml:"users,omitempty"`
}

// WebUser represents a web interface user.
type WebUser struct {
	Username           string `yaml:"username"`
	PasswordHash       string `yaml:"password_hash"` // bcrypt
	Role               string `yaml:"role"`           // "admin" or "viewer"
	MustChangePassword bool   `yaml:"must_change_password,omitempty"`
}

// Web user roles
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// MQTTConfig holds MQTT publisher configuration.
type MQTTConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	ClientID string `yaml:"client_id"`
	Selector string `yaml:"selector,omitempty"` // Optional sub-namespace
	UseTLS   bool   `yaml:"use_tls,omitempty"`
}

// ValkeyConfig holds Valkey/Redis publisher configuration.
type ValkeyConfig struct {
	Name            string        `yaml:"name"`
	Enabled         bool          `yaml:"enabled"`
	Address         string        `yaml:"address"` // host:port format
	Password        string        `yaml:"password,omitempty"`
	Database        int           `yaml:"database"`           // Redis DB number (default 0)
	Selector        string        `yaml:"selector,omitempty"` // Optional sub-namespace
	UseTLS          bool          `yaml:"use_tls,omitempty"`
	KeyTTL          time.Duration `yaml:"key_ttl,omitempty"`          // TTL for keys (0 = no expiry)
	PublishChanges  bool          `yaml:"publish_changes,omitempty"`  // Publish to Pub/Sub on changes
	EnableWriteback bool          `yaml:"enable_writeback,omitempty"` // Enable write-back queue
}

// KafkaConfig holds Kafka cluster configuration for YAML persistence.
// Note: This struct uses pointer types (e.g., *bool) for optional fields to distinguish
// between "not set" (nil = use default) and "explicitly set to false".
// The kafka package has its own Config struct with non-pointer types for runtime use.
type KafkaConfig struct {
	Name          string        `yaml:"name"`
	Enabled       bool          `yaml:"enabled"`
	Brokers       []string      `yaml:"brokers"`
	UseTLS        bool          `yaml:"use_tls,omitempty"`
	TLSSkipVerify bool          `yaml:"tls_skip_verify,omitempty"`
	SASLMechanism string        `yaml:"sasl_mechanism,omitempty"` // PLAIN, SCRAM-SHA-256, SCRAM-SHA-512
	Username      string        `yaml:"username,omitempty"`
	Password      string        `yaml:"password,omitempty"`
	RequiredAcks  int           `yaml:"required_acks,omitempty"` // -1=all, 0=none, 1=leader
	MaxRetries    int           `yaml:"max_retries,omitempty"`
	RetryBackoff  time.Duration `yaml:"retry_backoff,omitempty"`

	// Tag publishing settings
	PublishChanges   bool   `yaml:"publish_changes,omitempty"`    // Publish tag changes to Kafka
	Selector         string `yaml:"selector,omitempty"`           // Optional sub-namespace
	AutoCreateTopics *bool  `yaml:"auto_create_topics,omitempty"` // Auto-create topics if they don't exist (default true)

	// Writeback settings
	EnableWriteback bool          `yaml:"enable_writeback,omitempty"` // Enable consuming write requests from Kafka
	ConsumerGroup   string        `yaml:"consumer_group,omitempty"`   // Consumer group ID
	WriteMaxAge     time.Duration `yaml:"write_max_age,omitempty"`    // Max age of write requests to process (default: 30s)
}

// DefaultMQTTConfig returns an MQTT publisher config with sensible local defaults.
func DefaultMQTTConfig(name string) MQTTConfig {
	return MQTTConfig{
		Name:     name,
		Enabled:  true,
		Broker:   "localhost",
		Port:     1883,
		ClientID: "cslogix-" + name,
	}
}

// DefaultValkeyConfig returns a Valkey/Redis publisher config with sensible local defaults.
func DefaultValkeyConfig(name string) ValkeyConfig {
	return ValkeyConfig{
		Name:           name,
		Enabled:        true,
		Address:        "localhost:6379",
		PublishChanges: true,
	}
}

// DefaultKafkaConfig returns a Kafka producer config with sensible local defaults.
func DefaultKafkaConfig(name string) KafkaConfig {
	return KafkaConfig{
		Name:         name,
		Enabled:      true,
		Brokers:      []string{"localhost:9092"},
		RequiredAcks: -1,
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PLCs:     []PLCConfig{},
		PollRate: time.Second,
		Web: WebConfig{
			Enabled: true,
			Host:    "0.0.0.0",
			Port:    8080,
			API: WebAPIConfig{
				Enabled: true,
			},
			UI: WebUIConfig{
				Enabled: true,
			},
		},
		MQTT:   []MQTTConfig{},
		Valkey: []ValkeyConfig{},
		Kafka:  []KafkaConfig{},
	}
}

// FindMQTT returns the MQTT config with the given name, or nil if not found.
func (c *Config) FindMQTT(name string) *MQTTConfig {
	for i := range c.MQTT {
		if c.MQTT[i].Name == name {
			return &c.MQTT[i]
		}
	}
	return nil
}

// AddMQTT adds a new MQTT configuration.
func (c *Config) AddMQTT(mqtt MQTTConfig) {
	c.MQTT = append(c.MQTT, mqtt)
}

// RemoveMQTT removes an MQTT config by name.
func (c *Config) RemoveMQTT(name string) bool {
	for i, m := range c.MQTT {
		if m.Name == name {
			c.MQTT = append(c.MQTT[:i], c.MQTT[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateMQTT updates an existing MQTT configuration.
func (c *Config) UpdateMQTT(name string, updated MQTTConfig) bool {
	for i, m := range c.MQTT {
		if m.Name == name {
			c.MQTT[i] = updated
			return true
		}
	}
	return false
}

// FindValkey returns the Valkey config with the given name, or nil if not found.
func (c *Config) FindValkey(name string) *ValkeyConfig {
	for i := range c.Valkey {
		if c.Valkey[i].Name == name {
			return &c.Valkey[i]
		}
	}
	return nil
}

// AddValkey adds a new Valkey configuration.
func (c *Config) AddValkey(valkey ValkeyConfig) {
	c.Valkey = append(c.Valkey, valkey)
}

// RemoveValkey removes a Valkey config by name.
func (c *Config) RemoveValkey(name string) bool {
	for i, v := range c.Valkey {
		if v.Name == name {
			c.Valkey = append(c.Valkey[:i], c.Valkey[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateValkey updates an existing Valkey configuration.
func (c *Config) UpdateValkey(name string, updated ValkeyConfig) bool {
	for i, v := range c.Valkey {
		if v.Name == name {
			c.Valkey[i] = updated
			return true
		}
	}
	return false
}

// DefaultPath returns the default configuration file path (~/.cslogix/config.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".cslogix", "config.yaml")
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	dirty := false

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// File doesn't exist - use defaults and save them below
		dirty = true
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Generate session secret if not already set (needed for login/setup pages)
	if cfg.Web.UI.SessionSecret == "" {
		secret := make([]byte, 32)
		rand.Read(secret)
		cfg.Web.UI.SessionSecret = base64.StdEncoding.EncodeToString(secret)
		dirty = true
	}

	if dirty {
		cfg.Save(path) // Best-effort save
	}

	return cfg, nil
}

// AddOnChangeListener registers a callback to be called when the config is saved.
// Returns an ID that can be used to remove the listener later.
func (c *Config) AddOnChangeListener(cb func()) ConfigListenerID {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	if c.changeListeners == nil {
		c.changeListeners = make(map[ConfigListenerID]func())
	}

	id := ConfigListenerID(fmt.Sprintf("listener-%d", atomic.AddUint64(&c.listenerCounter, 1)))
	c.changeListeners[id] = cb
	return id
}

// RemoveOnChangeListener removes a previously registered listener.
func (c *Config) RemoveOnChangeListener(id ConfigListenerID) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	delete(c.changeListeners, id)
}

// notifyChangeListeners calls all registered change listeners.
func (c *Config) notifyChangeListeners() {
	c.listenersMu.RLock()
	listeners := make([]func(), 0, len(c.changeListeners))
	for _, cb := range c.changeListeners {
		listeners = append(listeners, cb)
	}
	c.listenersMu.RUnlock()

	// Call listeners outside the lock to avoid deadlocks
	for _, cb := range listeners {
		go cb() // Run in goroutine to avoid blocking
	}
}

// Lock acquires the config data mutex for exclusive access.
// Use this before modifying config fields, then call UnlockAndSave.
func (c *Config) Lock() { c.dataMu.Lock() }

// Unlock releases the config data mutex without saving.
// Prefer UnlockAndSave when modifications were made.
func (c *Config) Unlock() { c.dataMu.Unlock() }

// Save acquires the lock, marshals, writes, and notifies.
// Use this when the caller does not already hold the lock.
func (c *Config) Save(path string) error {
	c.dataMu.Lock()
	return c.saveLocked(path)
}

// UnlockAndSave marshals, releases the lock, writes, and notifies.
// The caller must already hold the lock via Lock().
func (c *Config) UnlockAndSave(path string) error {
	return c.saveLocked(path)
}

// saveLocked marshals config (lock must be held), unlocks, then writes and notifies.
func (c *Config) saveLocked(path string) error {
	data, err := yaml.Marshal(c)
	c.dataMu.Unlock() // Release lock after marshal, before I/O

	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	// Notify listeners after successful save
	c.notifyChangeListeners()
	return nil
}

// FindPLC returns the PLC config with the given name, or nil if not found.
func (c *Config) FindPLC(name string) *PLCConfig {
	for i := range c.PLCs {
		if c.PLCs[i].Name == name {
			return &c.PLCs[i]
		}
	}
	return nil
}

// AddPLC adds a new PLC configuration.
func (c *Config) AddPLC(plc PLCConfig) {
	c.PLCs = append(c.PLCs, plc)
}

// RemovePLC removes a PLC by name.
func (c *Config) RemovePLC(name string) bool {
	for i, plc := range c.PLCs {
		if plc.Name == name {
			c.PLCs = append(c.PLCs[:i], c.PLCs[i+1:]...)
			return true
		}
	}
	return false
}

// UpdatePLC updates an existing PLC configuration.
func (c *Config) UpdatePLC(name string, updated PLCConfig) bool {
	for i, plc := range c.PLCs {
		if plc.Name == name {
			c.PLCs[i] = updated
			return true
		}
	}
	return false
}

// FindKafka returns the Kafka config with the given name, or nil if not found.
func (c *Config) FindKafka(name string) *KafkaConfig {
	for i := range c.Kafka {
		if c.Kafka[i].Name == name {
			return &c.Kafka[i]
		}
	}
	return nil
}

// AddKafka adds a new Kafka configuration.
func (c *Config) AddKafka(kafka KafkaConfig) {
	c.Kafka = append(c.Kafka, kafka)
}

// RemoveKafka removes a Kafka config by name.
func (c *Config) RemoveKafka(name string) bool {
	for i, k := range c.Kafka {
		if k.Name == name {
			c.Kafka = append(c.Kafka[:i], c.Kafka[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateKafka updates an existing Kafka configuration.
func (c *Config) UpdateKafka(name string, updated KafkaConfig) bool {
	for i, k := range c.Kafka {
		if k.Name == name {
			c.Kafka[i] = updated
			return true
		}
	}
	return false
}

// FindTagPack returns the TagPack config with the given name, or nil if not found.
func (c *Config) FindTagPack(name string) *TagPackConfig {
	for i := range c.TagPacks {
		if c.TagPacks[i].Name == name {
			return &c.TagPacks[i]
		}
	}
	return nil
}

// AddTagPack adds a new TagPack configuration.
func (c *Config) AddTagPack(pack TagPackConfig) {
	c.TagPacks = append(c.TagPacks, pack)
}

// RemoveTagPack removes a TagPack config by name.
func (c *Config) RemoveTagPack(name string) bool {
	for i, p := range c.TagPacks {
		if p.Name == name {
			c.TagPacks = append(c.TagPacks[:i], c.TagPacks[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateTagPack updates an existing TagPack configuration.
func (c *Config) UpdateTagPack(name string, updated TagPackConfig) bool {
	for i, p := range c.TagPacks {
		if p.Name == name {
			c.TagPacks[i] = updated
			return true
		}
	}
	return false
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Namespace != "" && !IsValidNamespace(c.Namespace) {
		return fmt.Errorf("invalid namespace: must contain only alphanumeric characters, dots, hyphens, and underscores")
	}
	return nil
}

// IsValidNamespace returns true if the namespace is valid.
// Valid namespaces contain only alphanumeric characters, hyphens, underscores, and dots.
func IsValidNamespace(ns string) bool {
	if ns == "" {
		return false
	}
	for _, r := range ns {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.') {
			return false
		}
	}
	return true
}

// FindWebUser returns the web user with the given username, or nil if not found.
func (c *Config) FindWebUser(username string) *WebUser {
	for i := range c.Web.UI.Users {
		if c.Web.UI.Users[i].Username == username {
			return &c.Web.UI.Users[i]
		}
	}
	return nil
}

// AddWebUser adds a new web user.
func (c *Config) AddWebUser(user WebUser) {
	c.Web.UI.Users = append(c.Web.UI.Users, user)
}

// RemoveWebUser removes a web user by username.
func (c *Config) RemoveWebUser(username string) bool {
	for i, u := range c.Web.UI.Users {
		if u.Username == username {
			c.Web.UI.Users = append(c.Web.UI.Users[:i], c.Web.UI.Users[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateWebUser updates an existing web user.
func (c *Config) UpdateWebUser(username string, updated WebUser) bool {
	for i, u := range c.Web.UI.Users {
		if u.Username == username {
			c.Web.UI.Users[i] = updated
			return true
		}
	}
	return false
}
