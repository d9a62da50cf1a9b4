package event

// MailQueueDestination is the default queue for mail waiting to be sent.
const MailQueueDestination string = "elastic_email_process_queue"

// MailQueueConsumerGroup is the consumer group (NSQ channel, NATS queue, Kafka group) draining it.
const MailQueueConsumerGroup string = "elastic_email_sender"
