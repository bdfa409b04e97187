package m_activity

// KeyPrefix namespaces activity events in the kv store.
// Full keys are KeyPrefix + <UTC time> + "/" + <event id>, so a prefix scan
// returns events in time order.
const (
	KeyPrefix  = "activity/"
	TimeLayout = "20060102T150405.000000000Z"
)
