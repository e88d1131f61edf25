// Package wizard sequences pages.Page values. The controller listens to each
// page's binding registry and re-evaluates the continue action after every
// edit; Next refuses to leave a page whose required fields are blank.
package wizard
