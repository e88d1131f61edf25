// Package pages provides the wizard pages built on the binding registry: the
// bibliography fields entry page and the article settings page. Both satisfy
// Page, the contract the wizard controller and presentation layers drive.
package pages
