package auth

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// PolicyOracle is an Oracle backed by a static YAML policy file:
// admin tokens mapped to actors, and roles mapped to permission sets.
// It stands in for the identity service in deployments that run the
// content API on its own.
type PolicyOracle struct {
	tokens map[string]Actor
	roles  map[string]map[Permission]bool
}

type policyFile struct {
	Kind     string `yaml:"kind"`
	Version  string `yaml:"version"`
	Metadata struct {
		Name string `yaml:"name"`
	} `yaml:"metadata"`
	Tokens []struct {
		Token   string `yaml:"token"`
		ActorID string `yaml:"actorId"`
		Type    string `yaml:"type"`
		Role    string `yaml:"role"`
	} `yaml:"tokens"`
	Roles map[string][]string `yaml:"roles"`
}

func (p policyFile) Validate() error {
	if p.Kind != "AccessPolicy" {
		return fmt.Errorf("unexpected policy kind: %q", p.Kind)
	}
	for _, tok := range p.Tokens {
		if tok.Token == "" {
			return fmt.Errorf("policy token entry with empty token")
		}
		if _, err := uuid.Parse(tok.ActorID); err != nil {
			return fmt.Errorf("invalid actorId %q: %w", tok.ActorID, err)
		}
		if _, ok := p.Roles[tok.Role]; !ok {
			return fmt.Errorf("token references unknown role %q", tok.Role)
		}
	}
	return nil
}

// LoadPolicy reads an AccessPolicy document from the reader.
func LoadPolicy(r io.Reader) (*PolicyOracle, error) {
	decoder := yaml.NewDecoder(r)
	var file policyFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode access policy: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}

	oracle := &PolicyOracle{
		tokens: make(map[string]Actor, len(file.Tokens)),
		roles:  make(map[string]map[Permission]bool, len(file.Roles)),
	}
	for role, perms := range file.Roles {
		set := make(map[Permission]bool, len(perms))
		for _, p := range perms {
			set[Permission(p)] = true
		}
		oracle.roles[role] = set
	}
	for _, tok := range file.Tokens {
		actorType := ActorType(tok.Type)
		if actorType == "" {
			actorType = ActorAdmin
		}
		oracle.tokens[tok.Token] = Actor{
			ID:   uuid.MustParse(tok.ActorID),
			Type: actorType,
			Role: tok.Role,
		}
	}
	return oracle, nil
}

// LoadPolicyFile reads an AccessPolicy document from disk.
func LoadPolicyFile(path string) (*PolicyOracle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open policy file: %w", err)
	}
	defer f.Close()
	return LoadPolicy(f)
}

func (o *PolicyOracle) Authenticate(_ context.Context, _ Surface, token string) (*Actor, error) {
	if token == "" {
		return nil, nil
	}
	actor, ok := o.tokens[token]
	if !ok {
		return nil, nil
	}
	return &actor, nil
}

func (o *PolicyOracle) IsPermitted(_ context.Context, actor Actor, _ Operation, permission Permission) (bool, error) {
	perms, ok := o.roles[actor.Role]
	if !ok {
		return false, nil
	}
	return perms[permission], nil
}

var _ Oracle = (*PolicyOracle)(nil)
