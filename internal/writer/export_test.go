package writer

// NewKafkaWriterWith exposes the test seam for the underlying message writer.
var NewKafkaWriterWith = newKafkaWriter

// MessageWriter exposes the messageWriter interface to external tests.
type MessageWriter = messageWriter
