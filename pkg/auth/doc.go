// Package auth provides the two authentication primitives of quotevault:
// a password hasher that turns plaintext secrets into storable verifiers,
// and a token service that issues and verifies signed, expiring JWTs.
//
// Both are pure over their injected configuration: the hasher over its cost
// factor, the token service over the process-wide signing secret. Neither
// reads ambient state, which keeps verification trivially parallel and
// testable.
package auth
