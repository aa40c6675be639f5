// Package chat implements conversation addressing, the per-conversation
// message store and the controller a UI drives.
package chat

// ConversationKey derives the canonical key for the conversation between
// two account ids. The ids are ordered lexicographically before joining,
// so ConversationKey(a, b) == ConversationKey(b, a) and a pair of accounts
// always maps to a single storage key.
func ConversationKey(idA, idB string) string {
	if idB < idA {
		idA, idB = idB, idA
	}
	return idA + "_" + idB
}
