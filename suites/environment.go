// Package suites contains the built-in test suites for the appliance. Each
// constructor closes over a target and returns a suite of thin assertion
// units; all orchestration (filtering, lifecycle, tallying) stays in the
// runner.
package suites

import (
	"fmt"
	"time"

	"github.com/miekg/dns"
	probing "github.com/prometheus-community/pro-bing"

	"github.com/fwlab/gauntlet/target"
	"github.com/fwlab/gauntlet/types"
)

const pingTimeout = 10 * time.Second

// sanityProbeName is a stable public name the DNS pre-flight check resolves.
const sanityProbeName = "one.one.one.one"

// NewEnvironment builds the mandatory pre-flight suite. Any failure here
// aborts the whole campaign: results against a broken environment would be
// meaningless.
func NewEnvironment(tgt *target.Target) *types.Suite {
	return &types.Suite{
		Name:        types.EnvironmentSuiteName,
		Description: "verifies the test environment is set up correctly",
		Units: []types.Unit{
			{
				Name: "client_online",
				Run: func(env *types.Env) error {
					pinger, err := probing.NewPinger(tgt.Profile.ClientHost)
					if err != nil {
						return fmt.Errorf("creating pinger for %s: %w", tgt.Profile.ClientHost, err)
					}
					pinger.Count = 3
					pinger.Timeout = pingTimeout
					pinger.SetPrivileged(false)
					if err := pinger.RunWithContext(env.Ctx); err != nil {
						return fmt.Errorf("pinging client host %s: %w", tgt.Profile.ClientHost, err)
					}
					stats := pinger.Statistics()
					env.Logf("ping %s: %d/%d replies", tgt.Profile.ClientHost, stats.PacketsRecv, stats.PacketsSent)
					if stats.PacketsRecv == 0 {
						return fmt.Errorf("client host %s is not answering pings", tgt.Profile.ClientHost)
					}
					return nil
				},
			},
			{
				Name: "dns_lookup",
				Run: func(env *types.Env) error {
					msg := new(dns.Msg)
					msg.SetQuestion(dns.Fqdn(sanityProbeName), dns.TypeA)
					client := new(dns.Client)
					in, _, err := client.ExchangeContext(env.Ctx, msg, tgt.Profile.Resolver)
					if err != nil {
						return fmt.Errorf("querying %s via %s: %w", sanityProbeName, tgt.Profile.Resolver, err)
					}
					if in.Rcode != dns.RcodeSuccess {
						return fmt.Errorf("resolver %s returned %s for %s", tgt.Profile.Resolver, dns.RcodeToString[in.Rcode], sanityProbeName)
					}
					if len(in.Answer) == 0 {
						return fmt.Errorf("resolver %s returned no answers for %s", tgt.Profile.Resolver, sanityProbeName)
					}
					env.Logf("resolved %s: %d answer(s)", sanityProbeName, len(in.Answer))
					return nil
				},
			},
			{
				Name: "api_online",
				Run: func(env *types.Env) error {
					if err := tgt.API.Ping(env.Ctx); err != nil {
						return fmt.Errorf("appliance API is not answering: %w", err)
					}
					return nil
				},
			},
			{
				Name: "dictionary_present",
				Run: func(env *types.Env) error {
					if !tgt.Dict.Available() {
						return fmt.Errorf("kernel dictionary interface not present at %s", tgt.Profile.DictionaryDir)
					}
					return nil
				},
			},
		},
	}
}
