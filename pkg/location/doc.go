// Package location abstracts how the application path is represented in the
// browsing context's addressable location.
//
// Two strategies exist:
//
//   - PathStrategy stores the path in the pathname: /base/users/42
//   - HashStrategy stores the path in the fragment: /base#/users/42
//
// Select picks one at provisioning time from the merged router options; the
// choice is never re-evaluated. Both strategies operate exclusively through
// the narrow PlatformLocation interface, for which MemoryPlatform provides
// an in-process implementation used by tests and the dev shell server.
package location
