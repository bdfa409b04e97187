package m_business

// Key of the business configuration document in the kv store.
const Key = "businessConfig"
