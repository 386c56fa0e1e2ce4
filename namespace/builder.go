// Package namespace builds topic and key paths with consistent namespace
// prefixing across the tag-publishing adapters (MQTT, Kafka, Valkey).
package namespace

// Builder constructs namespace-prefixed topics and keys for one instance
// of cslogix. A non-empty selector carves out a sub-namespace, letting
// several tag-pack configurations share one broker/cluster.
type Builder struct {
	namespace string
	selector  string
}

// New creates a namespace builder.
func New(namespace, selector string) *Builder {
	return &Builder{namespace: namespace, selector: selector}
}

// --- MQTT (delimiter: /) ---

// MQTTTagTopic returns the topic for a tag value: {ns}[/{sel}]/{plc}/tags/{tag}
func (b *Builder) MQTTTagTopic(plc, tag string) string {
	return b.mqttBase() + "/" + plc + "/tags/" + tag
}

// MQTTHealthTopic returns the topic for health status: {ns}[/{sel}]/{plc}/health
func (b *Builder) MQTTHealthTopic(plc string) string {
	return b.mqttBase() + "/" + plc + "/health"
}

// MQTTPackTopic returns the topic for a tag pack: {ns}[/{sel}]/packs/{pack}
func (b *Builder) MQTTPackTopic(pack string) string {
	return b.mqttBase() + "/packs/" + pack
}

// MQTTBase returns the root topic tag/write topics are built under: {ns}[/{sel}]
func (b *Builder) MQTTBase() string {
	return b.mqttBase()
}

func (b *Builder) mqttBase() string {
	if b.selector != "" {
		return b.namespace + "/" + b.selector
	}
	return b.namespace
}

// --- Valkey (delimiter: :) ---

// ValkeyTagKey returns the hash key for a PLC's tags: {ns}[:{sel}]:{plc}:tags
func (b *Builder) ValkeyTagKey(plc string) string {
	return b.valkeyBase() + ":" + plc + ":tags"
}

// ValkeyHealthKey returns the key for health status: {ns}[:{sel}]:{plc}:health
func (b *Builder) ValkeyHealthKey(plc string) string {
	return b.valkeyBase() + ":" + plc + ":health"
}

// ValkeyChangesChannel returns the pub/sub channel for a PLC's tag changes.
func (b *Builder) ValkeyChangesChannel(plc string) string {
	return b.valkeyBase() + ":" + plc + ":changes"
}

// ValkeyFactory returns the key prefix tag/health keys and the write queue
// are built under: {ns}[:{sel}]
func (b *Builder) ValkeyFactory() string {
	return b.valkeyBase()
}

func (b *Builder) valkeyBase() string {
	if b.selector != "" {
		return b.namespace + ":" + b.selector
	}
	return b.namespace
}

// --- Kafka (delimiter: -) ---

// KafkaTagTopic returns the topic tag snapshots are produced to: {ns}[-{sel}]
func (b *Builder) KafkaTagTopic() string {
	return b.kafkaBase()
}

// KafkaHealthTopic returns the topic for health status: {ns}[-{sel}].health
func (b *Builder) KafkaHealthTopic() string {
	return b.kafkaBase() + ".health"
}

// KafkaWriteTopic returns the topic consumed for write-back requests: {ns}[-{sel}]-writes
func (b *Builder) KafkaWriteTopic() string {
	return b.kafkaBase() + "-writes"
}

// KafkaWriteResponseTopic returns the topic write-back results are produced to: {ns}[-{sel}]-write-responses
func (b *Builder) KafkaWriteResponseTopic() string {
	return b.kafkaBase() + "-write-responses"
}

func (b *Builder) kafkaBase() string {
	if b.selector != "" {
		return b.namespace + "-" + b.selector
	}
	return b.namespace
}
