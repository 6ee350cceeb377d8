package model

// Secret identity is fixed for this add-on: one token under one realm.
// The store key is the Splunk storage/passwords identifier realm:name:.
const (
	SecretRealm = "spur_splunk_realm"
	SecretName  = "token"
)

// SecretKey returns the fixed lookup key for the Context-API token.
func SecretKey() string {
	return SecretRealm + ":" + SecretName + ":"
}

// Secret is a credential record in the secret store.
type Secret struct {
	Realm string
	Name  string
	Value string
}

// Key returns the store identifier for this record.
func (s *Secret) Key() string {
	return s.Realm + ":" + s.Name + ":"
}

// SecretRef is a weak reference to an existing secret record: lookup key
// only, no ownership of the value. Presence of a ref decides the
// create-vs-update branch during persistence.
type SecretRef struct {
	Realm string
	Name  string
}

// Key returns the store identifier the ref points at.
func (r *SecretRef) Key() string {
	return r.Realm + ":" + r.Name + ":"
}
