// Package module defines how independently written units extend the kernel.
//
// A module is any Go value. What the kernel does with it depends only on the
// capabilities the value implements:
//
//   - Builder: Build is called once per successful boot, in registration order.
//   - CommandRegistrar: RegisterCommands is called after Build to add console
//     commands.
//   - SafeBuilder: the module is also built during the safe-mode retry that
//     follows a failed boot.
//
// Capabilities and identity are resolved once, when the value is wrapped by
// New, and never re-evaluated. The Registry keeps wrapped modules in the
// order the application registered them; the kernel only reads it.
package module
