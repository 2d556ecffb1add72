// meta/meta.go
package meta

// ITERATIONS defines the number of search iterations per decision.
const ITERATIONS = 250

// CHANCE_NODES defines the maximum number of sampled outcomes per action.
const CHANCE_NODES = 10

// EXPLORATION defines the UCT exploration constant.
const EXPLORATION = 0.25

// DISCOUNT defines the discount factor used during backup.
const DISCOUNT = 0.99

// HORIZON defines the number of decisions a rollout may take.
const HORIZON = 30

// TEMPERATURE defines the exponent applied to visit counts for the policy target.
const TEMPERATURE = 1.0

// SEED defines the default seed of the search random source.
const SEED = 42

// EPISODES defines the number of episodes for an experiment.
const EPISODES = 10

// MAX_PERIODS defines the length of an episode in decision periods.
const MAX_PERIODS = 100
