package chain

// Instruction is an outbound action that a contract hands back to the
// platform for execution. The set of implementations is closed, a dispatch is
// expected to enumerate all of them.
type Instruction interface {
	instruction()
}

// Transfer moves coins from the contract to the recipient through the
// ledger.
//
// - implements chain.Instruction
type Transfer struct {
	To    string
	Coins []Coin
}

// Execute calls into another contract with an encoded payload, optionally
// attaching coins to the call.
//
// - implements chain.Instruction
type Execute struct {
	Contract Address
	Payload  []byte
	Funds    []Coin
}

// Instantiate deploys a new contract from a stored code, with an encoded
// initialization payload.
//
// - implements chain.Instruction
type Instantiate struct {
	CodeID  uint64
	Label   string
	Admin   string
	Payload []byte
	Funds   []Coin
}

// CreateDenom registers a new ledger denom derived from the sender address
// and the chosen subdenom. The platform mints the full denom name and reports
// it in the instruction events.
//
// - implements chain.Instruction
type CreateDenom struct {
	Sender   Address
	Subdenom string
}

// MintCoins increases the supply of a ledger denom administered by the
// sender, crediting the new coins to the sender.
//
// - implements chain.Instruction
type MintCoins struct {
	Sender Address
	Coin   Coin
}

// BurnCoins decreases the supply of a ledger denom administered by the
// sender, debiting the coins from the sender.
//
// - implements chain.Instruction
type BurnCoins struct {
	Sender Address
	Coin   Coin
}

func (Transfer) instruction()    {}
func (Execute) instruction()     {}
func (Instantiate) instruction() {}
func (CreateDenom) instruction() {}
func (MintCoins) instruction()   {}
func (BurnCoins) instruction()   {}

// Tag identifies a submission so that the platform can route the reply back
// to its origin.
type Tag uint64

// Submission is an instruction paired with its delivery policy. When Reply is
// set, the platform notifies the contract of the outcome, on success as well
// as on failure.
type Submission struct {
	Instruction Instruction
	Tag         Tag
	Reply       bool
}

// Submit wraps an instruction for a fire-and-forget delivery.
func Submit(in Instruction) Submission {
	return Submission{Instruction: in}
}

// SubmitForReply wraps an instruction so that the platform always calls back
// with the outcome identified by the tag.
func SubmitForReply(in Instruction, tag Tag) Submission {
	return Submission{
		Instruction: in,
		Tag:         tag,
		Reply:       true,
	}
}
