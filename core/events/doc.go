// Package events defines the typed game event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - game.*: game lifecycle boundaries.
//   - phase.*: day/night phase and night sub-phase openings.
//   - speaker.*: day speaker rotation progress.
//   - voting.*: ballot lifecycle for elections and day votes.
//   - player.*: per-player outcomes (deaths, eliminations, offices).
//
// Semantics used across the package:
//
//   - Killed: death caused at night (werewolf victim or witch poison).
//   - Eliminated: death caused by a day vote.
//   - Revealed role: the role string attached to any public death event.
//
// game events
//
//   - GameStarted (game.started): the roster is frozen and roles are dealt.
//   - RolesAssigned (game.roles_assigned): per-seat role map, for private
//     reveals only.
//   - GameEnded (game.ended): terminal, carries the winning camp and the
//     full role reveal. No event follows it.
//
// phase events
//
//   - PoliceElectionStarted (phase.police_election_started): one-time
//     election window right after game start.
//   - NightFell (phase.night_fell): a night began; day counter advances.
//   - WerewolvesWoke (phase.werewolves_woke): werewolf kill sub-phase.
//   - SeerWoke (phase.seer_woke): seer investigation sub-phase.
//   - WitchWoke (phase.witch_woke): witch potion sub-phase; carries the
//     pending victim if the werewolves chose one.
//   - DayBroke (phase.day_broke): night resolved; carries overnight deaths.
//
// speaker events
//
//   - SpeakerChanged (speaker.changed): a new current speaker was popped
//     from the rotation queue.
//   - SpeakerRotationFinished (speaker.rotation_finished): the queue
//     drained; the day moves on to voting.
//
// voting events
//
//   - VotingStarted (voting.started): a ballot opened; carries eligible
//     voters and candidates.
//
// player events
//
//   - PoliceElected (player.police_elected): a police chief was chosen.
//   - PlayerKilled (player.killed): a player died at night.
//   - PlayerEliminated (player.eliminated): a player was voted out.
//   - HunterRevenge (player.hunter_revenge): a dying hunter gets one
//     retaliation shot before their death is final.
package events
