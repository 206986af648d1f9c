package hedera

import "fmt"

// ChecksumStatus is the result of comparing a supplied checksum to the computed one.
type ChecksumStatus int

const (
	NoChecksumGiven ChecksumStatus = iota
	ChecksumValid
	ChecksumInvalid
)

func (s ChecksumStatus) String() string {
	switch s {
	case NoChecksumGiven:
		return "no_checksum_given"
	case ChecksumValid:
		return "valid"
	case ChecksumInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("ChecksumStatus(%d)", int(s))
	}
}

// ChecksumOutcome describes a validated account id.
type ChecksumOutcome struct {
	Status                ChecksumStatus
	AccountID             AccountID
	ComputedChecksum      string
	Canonical             string
	CanonicalWithChecksum string
}

// Usable reports whether the address may be used. A missing checksum is not an error.
func (o ChecksumOutcome) Usable() bool {
	return o.Status != ChecksumInvalid
}

// Validate parses raw and checks its checksum against network.
func Validate(network Network, raw string) (ChecksumOutcome, error) {
	id, err := ParseAccountID(raw)
	if err != nil {
		return ChecksumOutcome{}, err
	}

	code, ok := network.LedgerCode()
	if !ok {
		return ChecksumOutcome{}, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, network)
	}
	computed, err := ComputeChecksum(code, id.Shard, id.Realm, id.Num)
	if err != nil {
		return ChecksumOutcome{}, err
	}

	outcome := ChecksumOutcome{
		AccountID:             id,
		ComputedChecksum:      computed,
		Canonical:             id.String(),
		CanonicalWithChecksum: id.String() + "-" + computed,
	}
	switch {
	case id.Checksum == "":
		outcome.Status = NoChecksumGiven
	case id.Checksum == computed:
		outcome.Status = ChecksumValid
	default:
		outcome.Status = ChecksumInvalid
	}
	return outcome, nil
}
