package addon

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/odoo-devkit/odev/pkg/errors"
)

// viewsDocument builds the addon's tree and form view XML
func viewsDocument(name string) (string, error) {
	model := strings.ReplaceAll(name, "_", ".")

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	odoo := doc.CreateElement("odoo")

	treeView := odoo.CreateElement("record")
	treeView.CreateAttr("id", name+"_view_tree")
	treeView.CreateAttr("model", "ir.ui.view")
	addField(treeView, "name", model+".view.tree")
	addField(treeView, "model", model)
	arch := treeView.CreateElement("field")
	arch.CreateAttr("name", "arch")
	arch.CreateAttr("type", "xml")
	tree := arch.CreateElement("tree")
	nameCol := tree.CreateElement("field")
	nameCol.CreateAttr("name", "name")

	action := odoo.CreateElement("record")
	action.CreateAttr("id", name+"_action")
	action.CreateAttr("model", "ir.actions.act_window")
	addField(action, "name", titleCase(name))
	addField(action, "res_model", model)
	addField(action, "view_mode", "tree,form")

	menu := odoo.CreateElement("menuitem")
	menu.CreateAttr("id", name+"_menu")
	menu.CreateAttr("name", titleCase(name))
	menu.CreateAttr("action", name+"_action")

	doc.Indent(4)
	xml, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "serializing view XML")
	}
	return xml, nil
}

func addField(record *etree.Element, name, value string) {
	field := record.CreateElement("field")
	field.CreateAttr("name", name)
	field.SetText(value)
}
