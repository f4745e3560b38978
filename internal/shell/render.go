package shell

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/tienda-mobile/storectl/pkg/money"
)

func (s *Shell) renderAuth() {
	if s.ctrl.AuthMode() == AuthRegister {
		fmt.Fprintln(s.out, "Welcome. Create an account with: signup <name> <email> <password>")
		fmt.Fprintln(s.out, "Already registered? signin <email> <password>")
		return
	}
	fmt.Fprintln(s.out, "Sign in with: signin <email> <password>")
	fmt.Fprintln(s.out, "New here? signup <name> <email> <password>")
}

func (s *Shell) renderShop() {
	catalog := s.ctrl.Catalog()
	if len(catalog) == 0 {
		fmt.Fprintln(s.out, "no products available")
		return
	}

	w := tabwriter.NewWriter(s.out, 2, 4, 2, ' ', 0)
	for i, p := range catalog {
		line := fmt.Sprintf("%d.\t%s\t%s", i+1, p.Title, money.Format(p.Price))
		if q := s.ctrl.Cart().Quantity(p.ID); q > 0 {
			line += fmt.Sprintf("\tx%d", q)
		} else {
			line += "\t"
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
	s.renderTotals()
}

func (s *Shell) renderCart() {
	cart := s.ctrl.Cart()
	if cart.Empty() {
		fmt.Fprintln(s.out, "cart is empty")
		return
	}
	for _, l := range cart.Lines() {
		title := l.ProductID
		if p, ok := s.ctrl.Catalog().ByID(l.ProductID); ok {
			title = p.Title
		}
		fmt.Fprintf(s.out, "  %s x%d\n", title, l.Quantity)
	}
	s.renderTotals()
}

func (s *Shell) renderTotals() {
	cart := s.ctrl.Cart()
	fmt.Fprintf(s.out, "items: %d, total: %s\n",
		cart.ItemCount(), money.Format(cart.Total(s.ctrl.Catalog())))
}

func (s *Shell) renderOrders() {
	orders := s.ctrl.Orders()
	if len(orders) == 0 {
		fmt.Fprintln(s.out, "no orders yet")
		return
	}

	w := tabwriter.NewWriter(s.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tITEMS\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%d\t%s\n",
			o.CreatedAt.Local().Format(time.DateTime), o.ItemCount(), money.Format(o.Total))
	}
	w.Flush()
}

func (s *Shell) renderHelp() {
	switch s.ctrl.Mode() {
	case ModeAuth:
		fmt.Fprintln(s.out, `commands:
  signup <name> <email> <password>  create an account and sign in
  signin <email> <password>         sign in
  quit`)
	case ModeShop:
		fmt.Fprintln(s.out, `commands:
  list                 refresh the catalog
  add <n|product-id>   put one unit in the cart
  rm <n|product-id>    take one unit out
  cart                 show the cart
  pay                  submit the cart as an order
  orders               show your order history
  logout
  quit`)
	case ModeOrders:
		fmt.Fprintln(s.out, `commands:
  refresh              reload your order history
  shop                 back to the shop
  logout
  quit`)
	}
}
