// Package factory implements the provisioning of tokens that do not exist
// yet.
//
// A provisioning spans two invocations of the hosting contract. Request
// persists the storage key where the resulting identifier must land, then
// submits the create instruction with a correlation tag so that the platform
// always calls back with the outcome. When the callback fires, Resolve
// extracts the identifier assigned by the platform from the reply events and
// stores it as a serialized asset info, ready to be read back with LoadInfo.
//
// Only the snapshot carries state from one invocation to the other. The
// pending markers are keyed by the correlation tag, so a request on one
// backend never collides with a request on the other.
//
// Documentation Last Review: 05.02.2026
package factory

import (
	"encoding/binary"

	"github.com/duet-dlt/duet"
	"github.com/duet-dlt/duet/asset"
	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/core/store"
	"github.com/duet-dlt/duet/core/store/prefixed"
	"github.com/duet-dlt/duet/serde"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// Reply tags correlating the create instructions with their callbacks. The
// values are fixed and must not be reused by the hosting contract for its own
// submissions.
const (
	// TagCreateDenom identifies the callback of a ledger denom creation.
	TagCreateDenom chain.Tag = 14508

	// TagInstantiateToken identifies the callback of a token contract
	// instantiation.
	TagInstantiateToken chain.Tag = 14509
)

// Events and attributes reported by the platform for the create instructions.
const (
	eventCreateDenom  = "create_denom"
	attrNewTokenDenom = "new_token_denom"

	eventInstantiate    = "instantiate"
	attrContractAddress = "_contract_address"
)

// Storage prefixes isolating the provisioner entries in the shared snapshot.
const (
	prefixPending = "duet:factory:pending"
	prefixInfo    = "duet:factory:info"
)

var (
	// ErrProvisioningFailed indicates that the platform reported a failure
	// for the create instruction.
	ErrProvisioningFailed = xerrors.New("provisioning failed")

	// ErrUnknownReplyTag indicates a callback that none of the backends can
	// claim.
	ErrUnknownReplyTag = xerrors.New("unknown reply tag")

	// ErrMalformedCallback indicates a successful callback that does not
	// carry the expected event or attribute.
	ErrMalformedCallback = xerrors.New("malformed callback")
)

// defines prometheus metrics
var (
	promRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duet_factory_requests_total",
		Help: "total number of provisioning requests",
	})

	promResolved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duet_factory_resolved_total",
		Help: "total number of provisionings resolved",
	})

	promFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duet_factory_failures_total",
		Help: "total number of provisioning callbacks that failed",
	})
)

func init() {
	duet.PromCollectors = append(duet.PromCollectors, promRequests,
		promResolved, promFailures)
}

// Spec describes a token to provision on one of the supported backends. The
// set of implementations is closed, the provisioner enumerates all of them.
type Spec interface {
	spec()
}

// NativeSpec provisions a new denom on the chain ledger. The platform derives
// the final denom name from the requesting contract and the subdenom, and
// reports it in the callback.
//
// - implements factory.Spec
type NativeSpec struct {
	Subdenom string
}

// ContractSpec provisions a token tracked by a contract instantiated from a
// stored code. Init carries the encoded initialization payload, typically a
// serialized token.Init.
//
// - implements factory.Spec
type ContractSpec struct {
	CodeID uint64
	Label  string
	Admin  string
	Init   []byte
}

func (NativeSpec) spec()   {}
func (ContractSpec) spec() {}

// Provisioner drives the creation of new tokens on behalf of a contract. It
// is stateless, Request and Resolve read and write exclusively through the
// snapshot they are given.
type Provisioner struct {
	self   chain.Address
	val    chain.AddressValidator
	logger zerolog.Logger
}

// NewProvisioner creates a provisioner acting as the given contract address.
// The validator checks the addresses reported back by the platform.
func NewProvisioner(self chain.Address, val chain.AddressValidator) Provisioner {
	return Provisioner{
		self:   self,
		val:    val,
		logger: duet.Logger.With().Str("contract", self.String()).Logger(),
	}
}

// Request persists the storage key where the resolved identifier must be
// saved and returns the create instruction of the backend, tagged for a
// guaranteed callback.
//
// Requesting again on the same backend before the callback fires overwrites
// the pending key, both replies then resolve into the last slot.
func (p Provisioner) Request(snap store.Snapshot, spec Spec, key string) (chain.Submission, error) {
	pending := prefixed.NewSnapshot(prefixPending, snap)

	switch s := spec.(type) {
	case NativeSpec:
		err := pending.Set(tagKey(TagCreateDenom), []byte(key))
		if err != nil {
			return chain.Submission{}, xerrors.Errorf("failed to save pending key: %v", err)
		}

		promRequests.Inc()

		p.logger.Debug().
			Str("subdenom", s.Subdenom).
			Msg("denom creation requested")

		return chain.SubmitForReply(chain.CreateDenom{
			Sender:   p.self,
			Subdenom: s.Subdenom,
		}, TagCreateDenom), nil

	case ContractSpec:
		err := pending.Set(tagKey(TagInstantiateToken), []byte(key))
		if err != nil {
			return chain.Submission{}, xerrors.Errorf("failed to save pending key: %v", err)
		}

		promRequests.Inc()

		p.logger.Debug().
			Uint64("code", s.CodeID).
			Str("label", s.Label).
			Msg("token instantiation requested")

		return chain.SubmitForReply(chain.Instantiate{
			CodeID:  s.CodeID,
			Label:   s.Label,
			Admin:   s.Admin,
			Payload: s.Init,
		}, TagInstantiateToken), nil

	default:
		return chain.Submission{}, xerrors.Errorf("unsupported spec of type '%T'", spec)
	}
}

// Resolve consumes the callback of a create instruction. It extracts the
// identifier assigned by the platform, persists the matching asset info at
// the key stored by Request and returns it.
//
// Resolving twice for the same tag overwrites the previously stored result.
// The platform delivers each callback exactly once, deduplication is left to
// it.
func (p Provisioner) Resolve(ctx serde.Context, snap store.Snapshot, reply chain.Reply) (asset.Info, error) {
	res, err := reply.Unwrap()
	if err != nil {
		promFailures.Inc()
		return asset.Info{}, xerrors.Errorf("%w: %v", ErrProvisioningFailed, err)
	}

	var action, identifier string
	var info asset.Info

	switch reply.Tag {
	case TagCreateDenom:
		denom, found := findAttribute(res, eventCreateDenom, attrNewTokenDenom)
		if !found {
			promFailures.Inc()
			return asset.Info{}, xerrors.Errorf("missing attribute '%s' of event '%s': %w",
				attrNewTokenDenom, eventCreateDenom, ErrMalformedCallback)
		}

		action = "save_denom"
		identifier = denom
		info = asset.NewNativeInfo(denom)

	case TagInstantiateToken:
		raw, found := findAttribute(res, eventInstantiate, attrContractAddress)
		if !found {
			promFailures.Inc()
			return asset.Info{}, xerrors.Errorf("missing attribute '%s' of event '%s': %w",
				attrContractAddress, eventInstantiate, ErrMalformedCallback)
		}

		addr, err := p.val.Validate(raw)
		if err != nil {
			promFailures.Inc()
			return asset.Info{}, xerrors.Errorf("failed to check reported address: %w", err)
		}

		action = "save_token_address"
		identifier = raw
		info = asset.NewContractInfo(addr)

	default:
		promFailures.Inc()
		return asset.Info{}, xerrors.Errorf("tag '%d': %w", reply.Tag, ErrUnknownReplyTag)
	}

	key, err := prefixed.NewReadable(prefixPending, snap).Get(tagKey(reply.Tag))
	if err != nil {
		return asset.Info{}, xerrors.Errorf("failed to read pending key: %v", err)
	}

	if len(key) == 0 {
		return asset.Info{}, xerrors.Errorf("no pending request for tag '%d'", reply.Tag)
	}

	data, err := info.Serialize(ctx)
	if err != nil {
		return asset.Info{}, xerrors.Errorf("failed to serialize info: %v", err)
	}

	err = prefixed.NewSnapshot(prefixInfo, snap).Set(key, data)
	if err != nil {
		return asset.Info{}, xerrors.Errorf("failed to save info: %v", err)
	}

	promResolved.Inc()

	p.logger.Info().
		Str("action", action).
		Str("identifier", identifier).
		Stringer("request", xid.New()).
		Msg("token provisioned")

	return info, nil
}

// LoadInfo reads back the asset info persisted at the given key by a resolved
// provisioning. A key that never resolved returns an error wrapping
// asset.ErrNotFound.
func LoadInfo(ctx serde.Context, r store.Readable, key string) (asset.Info, error) {
	data, err := prefixed.NewReadable(prefixInfo, r).Get([]byte(key))
	if err != nil {
		return asset.Info{}, xerrors.Errorf("failed to read info: %v", err)
	}

	if len(data) == 0 {
		return asset.Info{}, xerrors.Errorf("key '%s': %w", key, asset.ErrNotFound)
	}

	info, err := asset.InfoFactory{}.InfoOf(ctx, data)
	if err != nil {
		return asset.Info{}, xerrors.Errorf("failed to restore info: %v", err)
	}

	return info, nil
}

// tagKey returns the storage key of the pending marker of a tag.
func tagKey(tag chain.Tag) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(tag))

	return key
}

func findAttribute(res chain.Result, event, attr string) (string, bool) {
	evt, found := res.GetEvent(event)
	if !found {
		return "", false
	}

	return evt.GetAttribute(attr)
}
