package usecases

import "time"

// DefaultNonceTTL is how long an issued sign-in nonce stays usable
const DefaultNonceTTL = 15 * time.Minute

// EmailVerificationTTL bounds the lifetime of an email verification link
const EmailVerificationTTL = 24 * time.Hour

// siwhVersion is the only CAIP-122 message version accepted
const siwhVersion = "1"

const emailVerificationPrefix = "email-verification:"

// AddressForm selects which rendering of the wallet address is handed to the
// signature verifier.
type AddressForm string

const (
	AddressCanonical   AddressForm = "canonical"   // shard.realm.num
	AddressChecksummed AddressForm = "checksummed" // shard.realm.num-abcde
	AddressRaw         AddressForm = "raw"         // as submitted by the client
)

// Valid reports whether f is a known address form
func (f AddressForm) Valid() bool {
	switch f {
	case AddressCanonical, AddressChecksummed, AddressRaw:
		return true
	}
	return false
}
